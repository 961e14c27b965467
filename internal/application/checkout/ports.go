package checkout

import (
	"context"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

// TxRunner ejecuta el checkout completo en una sola transacción. Si fn retorna error se hace
// rollback de todo (stock, logs, cliente, orden).
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}

// InventoryLedger descuento autoritativo de stock dentro de la transacción del checkout
// (implementado por inventory.Ledger).
type InventoryLedger interface {
	CommitDecrementInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
		productID string,
		qty int,
		staffID, orderID string,
		now time.Time,
	) (*entity.Product, error)
}

// EventPublisher publica OrderCommitted después del commit. Un error no revierte la orden.
type EventPublisher interface {
	PublishOrderCommitted(ctx context.Context, event OrderCommittedEvent) error
}
