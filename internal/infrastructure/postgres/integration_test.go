package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/grocery-pos/pkg/config"
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

// Requiere una base vacía o desechable: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func createProduct(t *testing.T, pool *pgxpool.Pool, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       "IT-" + uuid.New().String()[:8],
		Name:      "Integration product",
		Price:     money.MustParse("28.00"),
		CostPrice: money.MustParse("24.00"),
		GSTRate:   decimal.NewFromInt(5),
		Unit:      "pcs",
		StockQty:  stock,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(context.Background(), p))
	return p
}

func TestProductRepo_CreateLookupUpdateStock(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)
	p := createProduct(t, pool, 3)

	got, err := repo.GetBySKU(ctx, p.SKU)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "28.00", got.Price.String())
	assert.True(t, got.GSTRate.Equal(decimal.NewFromInt(5)))

	err = repo.Create(ctx, &entity.Product{ID: uuid.New().String(), SKU: p.SKU, Name: "dup"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	qty, ok, err := repo.UpdateStock(ctx, p.ID, -4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, qty)

	qty, ok, err = repo.UpdateStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, qty)

	missing, err := repo.GetByBarcode(ctx, "no-such-barcode")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCheckout_PostgresUltimaUnidad(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	p := createProduct(t, pool, 1)

	runner := postgres.NewTxRunner(pool)
	ledger := inventory.NewLedger(runner, postgres.NewProductRepository(pool), postgres.NewInventoryLogRepository(pool), logger.Nop())
	committer := checkout.NewCommitter(runner, ledger, memory.NewCartStore(), checkout.NopPublisher{}, logger.Nop(), "")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := cart.New(uuid.New().String())
			c.Lines = []cart.Line{{ProductID: p.ID, Quantity: 1}}
			_, errs[i] = committer.Checkout(ctx, c, checkout.Input{StaffID: c.SessionID})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, wins)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQty)

	logs, err := postgres.NewInventoryLogRepository(pool).ListByProduct(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, -1, logs[0].ChangeQty)
}

func TestCustomerRepo_TelefonoDuplicado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewCustomerRepository(pool)
	phone := "+91" + uuid.New().String()[:10]

	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: uuid.New().String(), Name: "A", Phone: phone}))
	err := repo.Create(ctx, &entity.Customer{ID: uuid.New().String(), Name: "B", Phone: phone})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := repo.GetByPhone(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}
