package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// DemoCatalog productos de demostración para una tienda nueva.
func DemoCatalog() []Row {
	return []Row{
		{SKU: "MILK500", Barcode: "8901000000010", Name: "Toned Milk 500ml", Category: "Food & Beverages",
			Price: money.MustParse("28.00"), CostPrice: money.MustParse("24.00"), GSTRate: decimal.NewFromInt(5), Unit: "pack", StockQty: 50},
		{SKU: "RICE5", Barcode: "8901000000027", Name: "Rice 5kg", Category: "Food & Beverages",
			Price: money.MustParse("350.00"), CostPrice: money.MustParse("300.00"), GSTRate: decimal.NewFromInt(5), Unit: "bag", StockQty: 20},
		{SKU: "DETER1", Barcode: "8901000000034", Name: "Detergent 1kg", Category: "Home Care",
			Price: money.MustParse("120.00"), CostPrice: money.MustParse("90.00"), GSTRate: decimal.NewFromInt(18), Unit: "pack", StockQty: 30},
	}
}

// Operador administrador creado junto con el catálogo de demostración.
const (
	DemoAdminUsername = "admin"
	DemoAdminPassword = "admin123"
)

// UserProvisioner devuelve el operador con ese username, creándolo si no existe.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, username, password, role string) (*entity.User, error)
}

// SeedDemo deja la tienda lista para probar: crea el admin si no existe y, si el catálogo está
// vacío, importa DemoCatalog con su stock inicial a nombre del admin. Es idempotente.
func (s *Service) SeedDemo(ctx context.Context, users UserProvisioner) (*entity.User, *ImportResult, error) {
	admin, err := users.EnsureUser(ctx, DemoAdminUsername, DemoAdminPassword, entity.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.productRepo.List(ctx, 1, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		return admin, &ImportResult{}, nil
	}
	res, err := s.Import(ctx, DemoCatalog(), admin.ID)
	return admin, res, err
}
