package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/logger"
	"github.com/jhoicas/grocery-pos/pkg/metrics"
)

var hundred = decimal.NewFromInt(100)

// AddLineInput entrada para agregar una línea. Token es lo escaneado/tecleado (barcode o SKU);
// ProductID es la selección explícita. Al menos uno es obligatorio.
type AddLineInput struct {
	Token       string
	ProductID   string
	Quantity    int
	DiscountPct decimal.Decimal
}

// Manager caso de uso del carrito. Sus errores son locales: nunca tocan stock ni órdenes.
type Manager struct {
	store        Store
	productRepo  repository.ProductRepository
	availability AvailabilityChecker
	log          *logger.Logger
}

func NewManager(store Store, productRepo repository.ProductRepository, availability AvailabilityChecker, log *logger.Logger) *Manager {
	return &Manager{store: store, productRepo: productRepo, availability: availability, log: log}
}

// Get devuelve el carrito actual de la sesión.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, domain.Invalid("session_id", "requerido")
	}
	return m.store.Get(ctx, sessionID)
}

// AddLine resuelve el producto, valida cantidad, descuento y disponibilidad y agrega la línea.
// La disponibilidad se verifica contra la cantidad acumulada del producto en el carrito.
// Si algo falla el carrito queda igual.
func (m *Manager) AddLine(ctx context.Context, sessionID string, in AddLineInput) (*Cart, error) {
	if sessionID == "" {
		return nil, domain.Invalid("session_id", "requerido")
	}
	if in.Quantity <= 0 {
		return nil, m.reject("quantity", domain.Invalid("quantity", "debe ser mayor a 0"))
	}
	if err := validatePct("discount_pct", in.DiscountPct); err != nil {
		return nil, m.reject("discount", err)
	}

	product, err := m.Resolve(ctx, in.Token, in.ProductID)
	if err != nil {
		return nil, m.reject("unresolved", err)
	}

	current, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	requested := current.QuantityOf(product.ID) + in.Quantity
	ok, err := m.availability.CheckAvailability(ctx, product.ID, requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, m.reject("stock", &domain.InsufficientStockError{
			ProductID: product.ID,
			SKU:       product.SKU,
			Available: product.StockQty,
			Requested: requested,
		})
	}

	next := current.Clone()
	next.Lines = append(next.Lines, Line{
		ProductID:   product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Quantity:    in.Quantity,
		DiscountPct: in.DiscountPct,
	})
	next.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, next); err != nil {
		return nil, err
	}
	metrics.CartLinesAdded.Inc()
	m.log.Debug().
		Str("session_id", sessionID).
		Str("product_id", product.ID).
		Int("quantity", in.Quantity).
		Msg("línea agregada al carrito")
	return next, nil
}

func (m *Manager) reject(reason string, err error) error {
	metrics.CartLinesRejected.WithLabelValues(reason).Inc()
	return err
}

// Resolve busca el producto: barcode exacto, luego SKU exacto, luego id explícito.
// Si token e id apuntan a productos distintos la entrada es ambigua.
func (m *Manager) Resolve(ctx context.Context, token, productID string) (*entity.Product, error) {
	token = strings.TrimSpace(token)
	productID = strings.TrimSpace(productID)
	if token == "" && productID == "" {
		return nil, domain.Invalid("product", "indique código o producto")
	}

	var byToken *entity.Product
	if token != "" {
		p, err := m.LookupCode(ctx, token)
		if err != nil {
			return nil, err
		}
		byToken = p
	}
	if productID == "" {
		if byToken == nil {
			return nil, domain.Invalid("product", fmt.Sprintf("código %q no encontrado", token))
		}
		return byToken, nil
	}

	byID, err := m.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	switch {
	case byToken != nil && byID != nil && byToken.ID != byID.ID:
		return nil, domain.Invalid("product", fmt.Sprintf("código %q y producto %s no coinciden", token, productID))
	case byToken != nil:
		return byToken, nil
	case byID != nil:
		return byID, nil
	default:
		return nil, domain.Invalid("product", "producto no encontrado")
	}
}

// LookupCode busca por barcode y, si no hay coincidencia, por SKU. (nil, nil) si no existe.
func (m *Manager) LookupCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := m.productRepo.GetByBarcode(ctx, code)
	if err != nil || p != nil {
		return p, err
	}
	return m.productRepo.GetBySKU(ctx, code)
}

// RemoveLine quita la línea en la posición index (0-based).
func (m *Manager) RemoveLine(ctx context.Context, sessionID string, index int) (*Cart, error) {
	current, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(current.Lines) {
		return nil, domain.Invalid("index", fmt.Sprintf("fuera de rango (0..%d)", len(current.Lines)-1))
	}
	next := current.Clone()
	next.Lines = append(next.Lines[:index], next.Lines[index+1:]...)
	next.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// SetOrderDiscount fija el descuento de orden (0–100) que usará el checkout.
func (m *Manager) SetOrderDiscount(ctx context.Context, sessionID string, pct decimal.Decimal) (*Cart, error) {
	if err := validatePct("order_discount_pct", pct); err != nil {
		return nil, err
	}
	current, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	next.OrderDiscountPct = pct
	next.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear descarta el carrito de la sesión.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.Invalid("session_id", "requerido")
	}
	return m.store.Clear(ctx, sessionID)
}

func validatePct(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return domain.Invalid(field, "debe estar entre 0 y 100")
	}
	return nil
}
