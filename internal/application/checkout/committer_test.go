package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"

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
	"github.com/jhoicas/grocery-pos/pkg/logger"
)

const staffID = "staff-1"

type recordingPublisher struct {
	mu     sync.Mutex
	events []checkout.OrderCommittedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCommitted(_ context.Context, e checkout.OrderCommittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	store     *memory.Store
	carts     *memory.CartStore
	committer *checkout.Committer
	query     *checkout.OrderQuery
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	products := []*entity.Product{
		{ID: "p-milk", SKU: "MILK500", Name: "Milk 500ml", Price: money.MustParse("28.00"), CostPrice: money.MustParse("24.00"), GSTRate: decimal.NewFromInt(5), StockQty: 10},
		{ID: "p-rice", SKU: "RICE5", Name: "Rice 5kg", Price: money.MustParse("350.00"), CostPrice: money.MustParse("300.00"), GSTRate: decimal.NewFromInt(5), StockQty: 1},
		{ID: "p-deter", SKU: "DETER1", Name: "Detergent 1kg", Price: money.MustParse("120.00"), CostPrice: money.MustParse("90.00"), GSTRate: decimal.NewFromInt(18), StockQty: 10},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	carts := memory.NewCartStore()
	ledger := inventory.NewLedger(store, store.Products(), store.InventoryLogs(), logger.Nop())
	pub := &recordingPublisher{}
	return &fixture{
		store:     store,
		carts:     carts,
		committer: checkout.NewCommitter(store, ledger, carts, pub, logger.Nop(), ""),
		query:     checkout.NewOrderQuery(store.Orders(), store.Customers(), 20),
		publisher: pub,
	}
}

func (f *fixture) cart(t *testing.T, session string, orderDiscount string, lines ...cart.Line) *cart.Cart {
	t.Helper()
	c := cart.New(session)
	c.Lines = lines
	c.OrderDiscountPct = decimal.RequireFromString(orderDiscount)
	require.NoError(t, f.carts.Save(context.Background(), c))
	return c
}

func line(productID string, qty int, discount string) cart.Line {
	return cart.Line{ProductID: productID, Quantity: qty, DiscountPct: decimal.RequireFromString(discount)}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQty
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	orders, err := f.store.Orders().ListRecent(context.Background(), 200)
	require.NoError(t, err)
	return len(orders)
}

func TestCheckout_ConfirmaOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cart(t, staffID, "0", line("p-milk", 2, "0"), line("p-rice", 1, "10"))

	order, err := f.committer.Checkout(ctx, c, checkout.Input{StaffID: staffID, CustomerName: "Asha", CustomerPhone: "9800000001"})
	require.NoError(t, err)

	assert.Equal(t, "371.00", order.Subtotal.String())
	assert.Equal(t, "18.55", order.TaxTotal.String())
	assert.Equal(t, "389.55", order.GrandTotal.String())
	assert.Equal(t, "23.00", order.ProfitAmount.String())
	assert.True(t, order.GrandTotal.Equal(order.Subtotal.Add(order.TaxTotal)))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "28.00", order.Items[0].UnitPrice.String())
	assert.Equal(t, "24.00", order.Items[0].UnitCost.String())

	assert.Equal(t, 8, f.stock(t, "p-milk"))
	assert.Equal(t, 0, f.stock(t, "p-rice"))

	logs, err := f.store.InventoryLogs().ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, -2, logs[0].ChangeQty)
	assert.Equal(t, -1, logs[1].ChangeQty)

	assert.True(t, c.IsEmpty(), "el carrito se limpia en memoria")
	stored, err := f.carts.Get(ctx, staffID)
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty(), "y en el store")

	require.NotNil(t, order.CustomerID)
	customer, err := f.store.Customers().GetByPhone(ctx, "9800000001")
	require.NoError(t, err)
	assert.Equal(t, *order.CustomerID, customer.ID)
	assert.Equal(t, "Asha", customer.Name)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, order.ID, f.publisher.events[0].OrderID)
	assert.Equal(t, checkout.EventTypeOrderCommitted, f.publisher.events[0].EventType)
}

func TestCheckout_DescuentoDeOrdenEscalaImpuestoYUtilidad(t *testing.T) {
	f := newFixture(t)
	c := f.cart(t, staffID, "10", line("p-milk", 2, "0"), line("p-rice", 1, "0"))

	order, err := f.committer.Checkout(context.Background(), c, checkout.Input{StaffID: staffID})
	require.NoError(t, err)

	assert.Equal(t, "406.00", order.GrossSubtotal.String())
	assert.Equal(t, "40.60", order.OrderDiscountAmount.String())
	assert.Equal(t, "365.40", order.Subtotal.String())
	assert.Equal(t, "18.27", order.TaxTotal.String())
	assert.Equal(t, "52.20", order.ProfitAmount.String())
	assert.Equal(t, "383.67", order.GrandTotal.String())
	assert.Nil(t, order.CustomerID)
}

func TestCheckout_FallaEnLinea2NoDejaRastro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cart(t, staffID, "0", line("p-milk", 2, "0"), line("p-rice", 5, "0"), line("p-deter", 1, "0"))

	_, err := f.committer.Checkout(ctx, c, checkout.Input{StaffID: staffID, CustomerPhone: "9800000002"})

	var phaseErr *checkout.PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, checkout.PhaseReserving, phaseErr.Phase)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "RICE5", stockErr.SKU)

	assert.Equal(t, 10, f.stock(t, "p-milk"))
	assert.Equal(t, 1, f.stock(t, "p-rice"))
	assert.Equal(t, 10, f.stock(t, "p-deter"))
	for _, id := range []string{"p-milk", "p-rice", "p-deter"} {
		logs, err := f.store.InventoryLogs().ListByProduct(ctx, id, 10)
		require.NoError(t, err)
		assert.Empty(t, logs, id)
	}
	assert.Zero(t, f.orderCount(t))
	customer, err := f.store.Customers().GetByPhone(ctx, "9800000002")
	require.NoError(t, err)
	assert.Nil(t, customer, "el cliente creado en la transacción también se revierte")

	assert.Len(t, c.Lines, 3, "el carrito queda intacto")
	assert.Empty(t, f.publisher.events)
}

func TestCheckout_FallaDePersistenciaRevierteTodo(t *testing.T) {
	f := newFixture(t)
	c := f.cart(t, staffID, "0", line("p-milk", 1, "0"), line("p-deter", 1, "0"))
	f.store.FailOn("order.create_item", errors.New("disk full"))

	_, err := f.committer.Checkout(context.Background(), c, checkout.Input{StaffID: staffID})

	var phaseErr *checkout.PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, checkout.PhasePersisting, phaseErr.Phase)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 10, f.stock(t, "p-milk"))
	assert.Equal(t, 10, f.stock(t, "p-deter"))
	assert.Zero(t, f.orderCount(t))
	assert.Len(t, c.Lines, 2)
}

func TestCheckout_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.committer.Checkout(ctx, cart.New(staffID), checkout.Input{StaffID: staffID})
	var phaseErr *checkout.PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, checkout.PhaseValidating, phaseErr.Phase)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c := f.cart(t, staffID, "100.01", line("p-milk", 1, "0"))
	_, err = f.committer.Checkout(ctx, c, checkout.Input{StaffID: staffID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c = f.cart(t, staffID, "0", line("p-milk", 1, "0"))
	_, err = f.committer.Checkout(ctx, c, checkout.Input{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 10, f.stock(t, "p-milk"))
}

func TestCheckout_MismoTelefonoMismoCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 1, "0")), checkout.Input{StaffID: staffID, CustomerPhone: "9800000003"})
	require.NoError(t, err)
	second, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 1, "0")), checkout.Input{StaffID: staffID, CustomerName: "Otro nombre", CustomerPhone: " 9800000003 "})
	require.NoError(t, err)
	other, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 1, "0")), checkout.Input{StaffID: staffID, CustomerPhone: "9800000004"})
	require.NoError(t, err)

	require.NotNil(t, first.CustomerID)
	require.NotNil(t, second.CustomerID)
	require.NotNil(t, other.CustomerID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID)
	assert.NotEqual(t, *first.CustomerID, *other.CustomerID)

	customer, err := f.store.Customers().GetByID(ctx, *first.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCustomerName, customer.Name)
}

func TestCheckout_UltimaUnidadUnSoloGanador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carts := []*cart.Cart{
		f.cart(t, "staff-a", "0", line("p-rice", 1, "0")),
		f.cart(t, "staff-b", "0", line("p-rice", 1, "0")),
	}

	errs := make([]error, len(carts))
	var wg sync.WaitGroup
	for i, c := range carts {
		wg.Add(1)
		go func(i int, c *cart.Cart) {
			defer wg.Done()
			_, errs[i] = f.committer.Checkout(ctx, c, checkout.Input{StaffID: c.SessionID})
		}(i, c)
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
	assert.Equal(t, 0, f.stock(t, "p-rice"))
	assert.Equal(t, 1, f.orderCount(t))
}

func TestCheckout_ErrorAlPublicarNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker caído")

	order, err := f.committer.Checkout(context.Background(), f.cart(t, staffID, "0", line("p-milk", 1, "0")), checkout.Input{StaffID: staffID})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1, f.orderCount(t))
}

func TestGetOrder_RecalculaDesdeSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 2, "0"), line("p-deter", 1, "5")), checkout.Input{StaffID: staffID, CustomerPhone: "9800000005"})
	require.NoError(t, err)

	detail, err := f.query.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 2)
	require.NotNil(t, detail.Customer)

	milk := detail.Lines[0]
	assert.Equal(t, "p-milk", milk.Item.ProductID)
	assert.Equal(t, "56.00", milk.Prices.Taxable.String())
	assert.Equal(t, "2.80", milk.Prices.Tax.String())
	assert.Equal(t, "58.80", milk.Prices.Total.String())
	assert.Equal(t, "1.4", milk.CGST.String())

	// 120 - 6.00 = 114.00; 18% = 20.52
	deter := detail.Lines[1]
	assert.Equal(t, "114.00", deter.Prices.Taxable.String())
	assert.Equal(t, "20.52", deter.Prices.Tax.String())

	sum := money.Sum(milk.Prices.Taxable, deter.Prices.Taxable)
	assert.True(t, sum.Equal(detail.Order.GrossSubtotal))
	tax := money.Sum(milk.Prices.Tax, deter.Prices.Tax)
	assert.True(t, tax.Equal(detail.Order.TaxTotal))

	_, err = f.query.GetOrder(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrder_IgnoraCambiosDePrecioPosteriores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 2, "0")), checkout.Input{StaffID: staffID})
	require.NoError(t, err)

	milk, err := f.store.Products().GetByID(ctx, "p-milk")
	require.NoError(t, err)
	milk.Price = money.MustParse("99.00")
	milk.GSTRate = decimal.NewFromInt(18)
	require.NoError(t, f.store.Products().UpdateCatalog(ctx, milk))

	detail, err := f.query.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "28.00", detail.Lines[0].Item.UnitPrice.String())
	assert.Equal(t, "56.00", detail.Lines[0].Prices.Taxable.String())
	assert.Equal(t, "2.80", detail.Lines[0].Prices.Tax.String())
	assert.Equal(t, "58.80", detail.Lines[0].Prices.Total.String())
	assert.Equal(t, "58.80", detail.Order.GrandTotal.String())
}

func TestCheckout_MismoProductoEnDosLineasSuperaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cart(t, staffID, "0", line("p-deter", 6, "0"), line("p-deter", 6, "0"))

	_, err := f.committer.Checkout(ctx, c, checkout.Input{StaffID: staffID})

	var phaseErr *checkout.PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, checkout.PhaseReserving, phaseErr.Phase)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	assert.Equal(t, 10, f.stock(t, "p-deter"))
	logs, err := f.store.InventoryLogs().ListByProduct(ctx, "p-deter", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Zero(t, f.orderCount(t))
	assert.Len(t, c.Lines, 2)
}

func TestListRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.committer.Checkout(ctx, f.cart(t, staffID, "0", line("p-milk", 1, "0")), checkout.Input{StaffID: staffID})
		require.NoError(t, err)
	}
	orders, err := f.query.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = f.query.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	_, err = f.query.ListRecent(ctx, 201)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
