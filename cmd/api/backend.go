package main

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/grocery-pos/pkg/config"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

// backend repositorios y runners de transacción de un store (PostgreSQL o memoria).
type backend struct {
	products    repository.ProductRepository
	customers   repository.CustomerRepository
	orders      repository.OrderRepository
	logs        repository.InventoryLogRepository
	users       repository.UserRepository
	categories  repository.CategoryRepository
	inventoryTx inventory.TxRunner
	checkoutTx  checkout.TxRunner
	persistent  bool
	close       func()
}

// openBackend usa PostgreSQL si hay base configurada; si no, un store en memoria del proceso.
func openBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if !cfg.Enabled() {
		log.Warn().Msg("sin base de datos configurada: usando store en memoria (los datos se pierden al reiniciar)")
		store := memory.NewStore()
		return &backend{
			products:    store.Products(),
			customers:   store.Customers(),
			orders:      store.Orders(),
			logs:        store.InventoryLogs(),
			users:       store.Users(),
			categories:  store.Categories(),
			inventoryTx: store,
			checkoutTx:  store,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &backend{
		products:    postgres.NewProductRepository(pool),
		customers:   postgres.NewCustomerRepository(pool),
		orders:      postgres.NewOrderRepository(pool),
		logs:        postgres.NewInventoryLogRepository(pool),
		users:       postgres.NewUserRepository(pool),
		categories:  postgres.NewCategoryRepository(pool),
		inventoryTx: txRunner,
		checkoutTx:  txRunner,
		persistent:  true,
		close:       pool.Close,
	}, nil
}
