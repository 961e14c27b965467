package cart

import "context"

// Store persiste el carrito entre requests (get/set/clear). Get devuelve un carrito vacío
// si la sesión no tiene uno.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// AvailabilityChecker consulta consultiva de stock (implementada por inventory.Ledger).
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, productID string, qty int) (bool, error)
}
