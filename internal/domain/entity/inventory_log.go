package entity

import "time"

// Motivos de movimiento de inventario.
const (
	ReasonRefill     = "refill"
	ReasonSale       = "sale"
	ReasonAdjustment = "adjustment"
)

// InventoryLog registro de auditoría de stock. Solo se agrega, nunca se modifica ni se borra.
type InventoryLog struct {
	ID        string
	ProductID string
	ChangeQty int // positivo refill/ajuste+, negativo venta
	Reason    string
	StaffID   string
	OrderID   *string
	Note      string
	CreatedAt time.Time
}
