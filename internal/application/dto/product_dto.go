package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Barcode    string          `json:"barcode,omitempty"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id,omitempty"`
	Price      money.Money     `json:"price"`
	CostPrice  money.Money     `json:"cost_price"`
	GSTRate    decimal.Decimal `json:"gst_rate"`
	Unit       string          `json:"unit"`
	StockQty   int             `json:"stock_qty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Barcode:    p.BarcodeValue(),
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		CostPrice:  p.CostPrice,
		GSTRate:    p.GSTRate,
		Unit:       p.Unit,
		StockQty:   p.StockQty,
		UpdatedAt:  p.UpdatedAt,
	}
}
