package dto

import (
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// RefillRequest body para POST /api/inventory/refill. Con unit_cost el costo del producto
// pasa a ser el promedio ponderado.
type RefillRequest struct {
	ProductID string       `json:"product_id" validate:"required"`
	Quantity  int          `json:"quantity" validate:"required,gt=0"`
	UnitCost  *money.Money `json:"unit_cost,omitempty"`
	Note      string       `json:"note" validate:"max=255"`
}

// AdjustRequest body para POST /api/inventory/adjust. ChangeQty con signo, distinto de 0.
type AdjustRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ChangeQty int    `json:"change_qty" validate:"required,ne=0"`
	Note      string `json:"note" validate:"max=255"`
}

// StockResponse stock resultante de un movimiento.
type StockResponse struct {
	ProductID string      `json:"product_id"`
	SKU       string      `json:"sku"`
	StockQty  int         `json:"stock_qty"`
	CostPrice money.Money `json:"cost_price"`
}

// InventoryLogResponse un movimiento del ledger.
type InventoryLogResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	ChangeQty int       `json:"change_qty"`
	Reason    string    `json:"reason"`
	StaffID   string    `json:"staff_id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewStockResponse(p *entity.Product) StockResponse {
	return StockResponse{ProductID: p.ID, SKU: p.SKU, StockQty: p.StockQty, CostPrice: p.CostPrice}
}

func NewInventoryLogResponses(entries []*entity.InventoryLog) []InventoryLogResponse {
	out := make([]InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, InventoryLogResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			ChangeQty: e.ChangeQty,
			Reason:    e.Reason,
			StaffID:   e.StaffID,
			OrderID:   e.OrderID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
