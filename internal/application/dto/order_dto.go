package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// CheckoutRequest body para POST /api/checkout. Sin teléfono la venta queda sin cliente.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"max=120"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=20"`
}

// OrderSummaryResponse cabecera de orden para listados.
type OrderSummaryResponse struct {
	ID                  string          `json:"id"`
	CreatedAt           time.Time       `json:"created_at"`
	CustomerID          *string         `json:"customer_id,omitempty"`
	StaffID             string          `json:"staff_id"`
	OrderDiscountPct    decimal.Decimal `json:"order_discount_pct"`
	GrossSubtotal       money.Money     `json:"gross_subtotal"`
	OrderDiscountAmount money.Money     `json:"order_discount_amount"`
	Subtotal            money.Money     `json:"subtotal"`
	TaxTotal            money.Money     `json:"tax_total"`
	GrandTotal          money.Money     `json:"grand_total"`
	ProfitAmount        money.Money     `json:"profit_amount"`
}

// OrderLineResponse línea de factura con desglose CGST/SGST.
type OrderLineResponse struct {
	Position       int             `json:"position"`
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      money.Money     `json:"unit_price"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
	Subtotal       money.Money     `json:"subtotal"`
	DiscountAmount money.Money     `json:"discount_amount"`
	Taxable        money.Money     `json:"taxable"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	Total          money.Money     `json:"total"`
}

// CustomerResponse cliente de la orden.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderResponse orden completa (factura).
type OrderResponse struct {
	OrderSummaryResponse
	Customer *CustomerResponse  `json:"customer,omitempty"`
	Lines    []OrderLineResponse `json:"lines"`
}

func NewOrderSummaryResponse(o *entity.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:                  o.ID,
		CreatedAt:           o.CreatedAt,
		CustomerID:          o.CustomerID,
		StaffID:             o.StaffID,
		OrderDiscountPct:    o.OrderDiscountPct,
		GrossSubtotal:       o.GrossSubtotal,
		OrderDiscountAmount: o.OrderDiscountAmount,
		Subtotal:            o.Subtotal,
		TaxTotal:            o.TaxTotal,
		GrandTotal:          o.GrandTotal,
		ProfitAmount:        o.ProfitAmount,
	}
}

func NewOrderSummaryResponses(orders []*entity.Order) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderSummaryResponse(o))
	}
	return out
}

func NewOrderResponse(d *checkout.OrderDetail) OrderResponse {
	out := OrderResponse{
		OrderSummaryResponse: NewOrderSummaryResponse(d.Order),
		Lines:                make([]OrderLineResponse, 0, len(d.Lines)),
	}
	if d.Customer != nil {
		out.Customer = &CustomerResponse{ID: d.Customer.ID, Name: d.Customer.Name, Phone: d.Customer.Phone}
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, OrderLineResponse{
			Position:       l.Item.Position,
			ProductID:      l.Item.ProductID,
			Quantity:       l.Item.Quantity,
			UnitPrice:      l.Item.UnitPrice,
			DiscountPct:    l.Item.DiscountPct,
			GSTRate:        l.Item.GSTRate,
			Subtotal:       l.Prices.Subtotal,
			DiscountAmount: l.Prices.DiscountAmount,
			Taxable:        l.Prices.Taxable,
			CGST:           l.CGST,
			SGST:           l.SGST,
			Total:          l.Prices.Total,
		})
	}
	return out
}

// NewOrderResponseFromOrder respuesta del checkout: la orden recién confirmada ya trae sus items.
func NewOrderResponseFromOrder(o *entity.Order) OrderResponse {
	detail := &checkout.OrderDetail{Order: o}
	for _, it := range o.Items {
		prices := it.Pricing()
		cgst, sgst := prices.TaxSplit()
		detail.Lines = append(detail.Lines, checkout.LineDetail{Item: it, Prices: prices, CGST: cgst, SGST: sgst})
	}
	return NewOrderResponse(detail)
}
