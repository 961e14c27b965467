package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line línea pendiente del carrito. El producto ya está resuelto a su id.
type Line struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

// Cart estado efímero de un operador: líneas en orden de captura y descuento de orden elegido.
// Solo se limpia con un checkout exitoso (o explícitamente con Clear).
type Cart struct {
	SessionID        string          `json:"session_id"`
	Lines            []Line          `json:"lines"`
	OrderDiscountPct decimal.Decimal `json:"order_discount_pct"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// New carrito vacío para la sesión.
func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []Line{}, OrderDiscountPct: decimal.Zero}
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// QuantityOf suma las cantidades pendientes de un producto en todas las líneas.
func (c *Cart) QuantityOf(productID string) int {
	total := 0
	for _, l := range c.Lines {
		if l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

// Clone copia profunda; el manager modifica la copia y solo la guarda si todo validó.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Lines = make([]Line, len(c.Lines))
	copy(out.Lines, c.Lines)
	return &out
}
