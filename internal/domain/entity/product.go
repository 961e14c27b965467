package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// Product representa un producto del catálogo de la tienda.
// StockQty nunca es negativo: lo garantizan el CHECK de la tabla y el UPDATE condicional del ledger.
type Product struct {
	ID         string
	SKU        string  // único, siempre presente
	Barcode    *string // EAN/UPC opcional, único si existe
	Name       string
	CategoryID string
	Price      money.Money     // precio de venta
	CostPrice  money.Money     // precio de compra
	GSTRate    decimal.Decimal // % combinado (CGST + SGST), ej. 5.00, 18.00
	Unit       string          // pcs, pack, bag...
	StockQty   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BarcodeValue devuelve el código de barras o "" si no tiene.
func (p *Product) BarcodeValue() string {
	if p.Barcode == nil {
		return ""
	}
	return *p.Barcode
}
