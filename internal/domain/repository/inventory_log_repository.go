package repository

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// InventoryLogRepository sumidero de auditoría de stock (solo inserción).
type InventoryLogRepository interface {
	Append(ctx context.Context, entry *entity.InventoryLog) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryLog, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryLog, error)
}
