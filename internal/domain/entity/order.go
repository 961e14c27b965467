package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// Order cabecera de una venta confirmada. Inmutable una vez persistida.
// GrandTotal == Subtotal + TaxTotal.
type Order struct {
	ID                  string
	CreatedAt           time.Time
	CustomerID          *string
	StaffID             string
	OrderDiscountPct    decimal.Decimal // 0–100
	GrossSubtotal       money.Money     // bases gravables antes del descuento de orden
	OrderDiscountAmount money.Money
	Subtotal            money.Money // base gravable después de descuentos de línea y de orden
	TaxTotal            money.Money
	GrandTotal          money.Money
	ProfitAmount        money.Money
	Items               []*OrderItem
}
