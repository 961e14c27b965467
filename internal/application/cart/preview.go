package cart

import (
	"context"
	"fmt"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/pricing"
)

// PricedLine línea del carrito con el precio vigente del catálogo.
type PricedLine struct {
	Line    Line
	Product *entity.Product
	Prices  pricing.LineResult
}

// Preview totales estimados del carrito. Es informativo: el checkout vuelve a leer
// precio y GST bajo bloqueo, así que el cobro final puede diferir si el catálogo cambió.
type Preview struct {
	Cart   *Cart
	Lines  []PricedLine
	Totals pricing.OrderTotals
}

// Preview calcula los totales del carrito de la sesión con el catálogo actual.
func (m *Manager) Preview(ctx context.Context, sessionID string) (*Preview, error) {
	c, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.PreviewCart(ctx, c)
}

// PreviewCart igual que Preview pero sobre un carrito ya cargado.
func (m *Manager) PreviewCart(ctx context.Context, c *Cart) (*Preview, error) {
	out := &Preview{Cart: c, Lines: make([]PricedLine, 0, len(c.Lines))}
	results := make([]pricing.LineResult, 0, len(c.Lines))
	for _, line := range c.Lines {
		product, err := m.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
		}
		prices := pricing.PriceLine(pricing.LineInput{
			UnitPrice:   product.Price,
			CostPrice:   product.CostPrice,
			Quantity:    line.Quantity,
			DiscountPct: line.DiscountPct,
			GSTRate:     product.GSTRate,
		})
		results = append(results, prices)
		out.Lines = append(out.Lines, PricedLine{Line: line, Product: product, Prices: prices})
	}
	out.Totals = pricing.PriceOrder(results, c.OrderDiscountPct)
	return out, nil
}
