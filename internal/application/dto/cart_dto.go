package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// AddLineRequest body para POST /api/cart/lines. Token es el código escaneado (barcode o SKU).
type AddLineRequest struct {
	Token       string          `json:"token" validate:"required_without=ProductID"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	DiscountPct decimal.Decimal `json:"discount_pct" validate:"gte=0,lte=100"`
}

// SetDiscountRequest body para PUT /api/cart/discount.
type SetDiscountRequest struct {
	OrderDiscountPct decimal.Decimal `json:"order_discount_pct" validate:"gte=0,lte=100"`
}

// CartLineResponse línea del carrito con precio vigente.
type CartLineResponse struct {
	Index       int             `json:"index"`
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   money.Money     `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	Taxable     money.Money     `json:"taxable"`
	Tax         money.Money     `json:"tax"`
	Total       money.Money     `json:"total"`
}

// CartResponse carrito con totales estimados.
type CartResponse struct {
	SessionID           string             `json:"session_id"`
	Lines               []CartLineResponse `json:"lines"`
	OrderDiscountPct    decimal.Decimal    `json:"order_discount_pct"`
	GrossSubtotal       money.Money        `json:"gross_subtotal"`
	OrderDiscountAmount money.Money        `json:"order_discount_amount"`
	Subtotal            money.Money        `json:"subtotal"`
	TaxTotal            money.Money        `json:"tax_total"`
	GrandTotal          money.Money        `json:"grand_total"`
}

func NewCartResponse(p *cart.Preview) CartResponse {
	out := CartResponse{
		SessionID:           p.Cart.SessionID,
		Lines:               make([]CartLineResponse, 0, len(p.Lines)),
		OrderDiscountPct:    p.Cart.OrderDiscountPct,
		GrossSubtotal:       p.Totals.GrossSubtotal,
		OrderDiscountAmount: p.Totals.OrderDiscountAmount,
		Subtotal:            p.Totals.Subtotal,
		TaxTotal:            p.Totals.TaxTotal,
		GrandTotal:          p.Totals.GrandTotal,
	}
	for i, l := range p.Lines {
		out.Lines = append(out.Lines, CartLineResponse{
			Index:       i,
			ProductID:   l.Line.ProductID,
			SKU:         l.Line.SKU,
			Name:        l.Line.Name,
			Quantity:    l.Line.Quantity,
			UnitPrice:   l.Product.Price,
			DiscountPct: l.Line.DiscountPct,
			GSTRate:     l.Product.GSTRate,
			Taxable:     l.Prices.Taxable,
			Tax:         l.Prices.Tax,
			Total:       l.Prices.Total,
		})
	}
	return out
}
