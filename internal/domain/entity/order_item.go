package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/domain/pricing"
)

// OrderItem línea de una orden. UnitPrice, UnitCost y GSTRate son snapshot del momento de la venta.
type OrderItem struct {
	ID          string
	OrderID     string
	Position    int // orden de la línea en el carrito
	ProductID   string
	Quantity    int
	UnitPrice   money.Money
	UnitCost    money.Money
	GSTRate     decimal.Decimal
	DiscountPct decimal.Decimal
}

// Pricing recalcula los montos de la línea desde el snapshot (no depende del catálogo actual).
func (it *OrderItem) Pricing() pricing.LineResult {
	return pricing.PriceLine(pricing.LineInput{
		UnitPrice:   it.UnitPrice,
		CostPrice:   it.UnitCost,
		Quantity:    it.Quantity,
		DiscountPct: it.DiscountPct,
		GSTRate:     it.GSTRate,
	})
}
