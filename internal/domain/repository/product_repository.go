package repository

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (catálogo + contador de stock).
// Los métodos Get* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// UpdateCatalog actualiza los datos de catálogo (barcode, nombre, categoría, precios, GST, unidad).
	// Nunca toca el stock: eso solo pasa por el ledger.
	UpdateCatalog(ctx context.Context, product *entity.Product) error
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock suma delta al stock solo si el resultado no queda negativo.
	// Devuelve el stock nuevo y ok=false si la condición no se cumplió.
	UpdateStock(ctx context.Context, id string, delta int) (newQty int, ok bool, err error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
