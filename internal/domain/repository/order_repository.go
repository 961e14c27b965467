package repository

import (
	"context"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// ListRecent devuelve las órdenes más recientes primero (sin líneas).
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
	// SalesSummary suma las órdenes creadas en [from, to).
	SalesSummary(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error)
}
