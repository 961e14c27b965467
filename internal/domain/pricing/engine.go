package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// LineInput datos de una línea para el cálculo (precio y tasa ya son snapshot de venta).
type LineInput struct {
	UnitPrice   money.Money
	CostPrice   money.Money
	Quantity    int
	DiscountPct decimal.Decimal // descuento de línea, 0–100
	GSTRate     decimal.Decimal // % GST combinado (CGST + SGST)
}

// LineResult montos de una línea, cada uno redondeado en el paso en que se produce.
type LineResult struct {
	Subtotal       money.Money
	DiscountAmount money.Money
	Taxable        money.Money
	Tax            money.Money
	Total          money.Money
	Profit         money.Money
}

// TaxSplit desglose CGST/SGST: cada mitad es Tax/2 sin redondear (solo presentación).
func (r LineResult) TaxSplit() (cgst, sgst decimal.Decimal) {
	half := r.Tax.Half()
	return half, half
}

// PriceLine aplica: subtotal → descuento de línea → base gravable → GST → total, y la utilidad
// (el descuento reduce la utilidad; el impuesto no la afecta).
func PriceLine(in LineInput) LineResult {
	subtotal := in.UnitPrice.MulQty(in.Quantity)
	discount := subtotal.Percent(in.DiscountPct)
	taxable := subtotal.Sub(discount)
	tax := taxable.Percent(in.GSTRate)
	profit := in.UnitPrice.Sub(in.CostPrice).MulQty(in.Quantity).Sub(discount)
	return LineResult{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Taxable:        taxable,
		Tax:            tax,
		Total:          taxable.Add(tax),
		Profit:         profit,
	}
}

// OrderTotals totales de la orden después del descuento global.
type OrderTotals struct {
	GrossSubtotal       money.Money // suma de bases gravables antes del descuento de orden
	OrderDiscountPct    decimal.Decimal
	OrderDiscountAmount money.Money
	Subtotal            money.Money
	TaxTotal            money.Money
	GrandTotal          money.Money
	ProfitTotal         money.Money
}

// PriceOrder agrega las líneas y aplica el descuento de orden.
// El impuesto y la utilidad se escalan con la razón exacta (subtotal - descuento) / subtotal
// en vez de recalcular el impuesto por línea; con subtotal 0 el descuento no tiene efecto.
func PriceOrder(lines []LineResult, orderDiscountPct decimal.Decimal) OrderTotals {
	subtotal, taxTotal, profitTotal := money.Zero, money.Zero, money.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Taxable)
		taxTotal = taxTotal.Add(l.Tax)
		profitTotal = profitTotal.Add(l.Profit)
	}

	totals := OrderTotals{
		GrossSubtotal:       subtotal,
		OrderDiscountPct:    orderDiscountPct,
		OrderDiscountAmount: money.Zero,
		Subtotal:            subtotal,
		TaxTotal:            taxTotal,
		ProfitTotal:         profitTotal,
	}
	if orderDiscountPct.IsPositive() {
		discount := subtotal.Percent(orderDiscountPct)
		newSubtotal := subtotal.Sub(discount)
		if subtotal.IsPositive() {
			totals.TaxTotal = taxTotal.ScaleBy(newSubtotal, subtotal)
			totals.ProfitTotal = profitTotal.ScaleBy(newSubtotal, subtotal)
		}
		totals.OrderDiscountAmount = discount
		totals.Subtotal = newSubtotal
	}
	totals.GrandTotal = totals.Subtotal.Add(totals.TaxTotal)
	return totals
}
