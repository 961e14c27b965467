package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/pricing"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/logger"
	"github.com/jhoicas/grocery-pos/pkg/metrics"
	"github.com/jhoicas/grocery-pos/pkg/tracing"
)

var hundred = decimal.NewFromInt(100)

// Input datos del checkout además del carrito.
type Input struct {
	StaffID       string
	CustomerName  string
	CustomerPhone string // vacío = venta sin cliente
}

// Committer convierte un carrito en una orden en una sola transacción:
// cliente, descuento de stock por línea, precios y persistencia. Todo o nada.
type Committer struct {
	txRunner            TxRunner
	ledger              InventoryLedger
	carts               cart.Store
	publisher           EventPublisher
	log                 *logger.Logger
	defaultCustomerName string
}

// NewCommitter construye el caso de uso. publisher puede ser NopPublisher{}.
func NewCommitter(
	txRunner TxRunner,
	ledger InventoryLedger,
	carts cart.Store,
	publisher EventPublisher,
	log *logger.Logger,
	defaultCustomerName string,
) *Committer {
	if defaultCustomerName == "" {
		defaultCustomerName = entity.DefaultCustomerName
	}
	return &Committer{
		txRunner:            txRunner,
		ledger:              ledger,
		carts:               carts,
		publisher:           publisher,
		log:                 log,
		defaultCustomerName: defaultCustomerName,
	}
}

// Checkout confirma el carrito c. Si tiene éxito devuelve la orden persistida (con Items) y deja
// c vacío; si falla devuelve *PhaseError, no persiste nada y c queda intacto.
func (uc *Committer) Checkout(ctx context.Context, c *cart.Cart, in Input) (*entity.Order, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "checkout.Commit")
	defer span.End()

	phase := PhaseIdle
	enter := func(p Phase) {
		phase = p
		uc.log.Debug().Str("staff_id", in.StaffID).Str("phase", string(p)).Msg("checkout")
	}

	enter(PhaseValidating)
	if err := validate(c, in); err != nil {
		return nil, uc.abort(span, phase, "", in.StaffID, err)
	}

	orderID := uuid.New().String()
	now := time.Now().UTC()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("staff.id", in.StaffID),
		attribute.Int("order.lines", len(c.Lines)),
	)

	var order *entity.Order
	err := uc.txRunner.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		customer, err := uc.resolveCustomer(ctx, customerRepo, in.CustomerName, in.CustomerPhone, now)
		if err != nil {
			return err
		}

		enter(PhaseReserving)
		products := make([]*entity.Product, len(c.Lines))
		for i, line := range c.Lines {
			p, err := uc.ledger.CommitDecrementInTx(ctx, productRepo, logRepo, line.ProductID, line.Quantity, in.StaffID, orderID, now)
			if err != nil {
				return err
			}
			products[i] = p
		}

		enter(PhasePricing)
		order = buildOrder(orderID, now, in.StaffID, customer, c, products)

		enter(PhasePersisting)
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := orderRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.abort(span, phase, orderID, in.StaffID, err)
	}

	enter(PhaseCommitted)
	metrics.CheckoutsTotal.WithLabelValues(string(PhaseCommitted)).Inc()
	metrics.CheckoutLatency.Observe(time.Since(start).Seconds())
	metrics.OrderGrandTotalCents.Add(float64(order.GrandTotal.Cents()))
	uc.log.Info().
		Str("order_id", order.ID).
		Str("staff_id", order.StaffID).
		Str("grand_total", order.GrandTotal.String()).
		Int("lines", len(order.Items)).
		Msg("orden confirmada")

	if err := uc.carts.Clear(ctx, c.SessionID); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Str("session_id", c.SessionID).Msg("no se pudo limpiar el carrito")
	}
	*c = *cart.New(c.SessionID)

	if err := uc.publisher.PublishOrderCommitted(ctx, newOrderCommittedEvent(uuid.New().String(), order)); err != nil {
		metrics.EventsPublishFailed.Inc()
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo publicar OrderCommitted")
	}
	return order, nil
}

func validate(c *cart.Cart, in Input) error {
	if c == nil || c.IsEmpty() {
		return domain.Invalid("cart", "el carrito está vacío")
	}
	if strings.TrimSpace(in.StaffID) == "" {
		return domain.Invalid("staff_id", "requerido")
	}
	if c.OrderDiscountPct.IsNegative() || c.OrderDiscountPct.GreaterThan(hundred) {
		return domain.Invalid("order_discount_pct", "debe estar entre 0 y 100")
	}
	for _, l := range c.Lines {
		if l.Quantity <= 0 {
			return domain.Invalid("quantity", "debe ser mayor a 0")
		}
		if l.DiscountPct.IsNegative() || l.DiscountPct.GreaterThan(hundred) {
			return domain.Invalid("discount_pct", "debe estar entre 0 y 100")
		}
	}
	return nil
}

// resolveCustomer busca por teléfono y crea el cliente si no existe. Sin teléfono no hay cliente.
// Si otra transacción insertó el mismo teléfono en paralelo, se relee el existente.
func (uc *Committer) resolveCustomer(
	ctx context.Context,
	repo repository.CustomerRepository,
	name, phone string,
	now time.Time,
) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	existing, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = uc.defaultCustomerName
	}
	customer := &entity.Customer{ID: uuid.New().String(), Name: name, Phone: phone, CreatedAt: now}
	if err := repo.Create(ctx, customer); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		existing, err = repo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrDuplicate
		}
		return existing, nil
	}
	return customer, nil
}

// buildOrder snapshot de precio, costo y GST del producto leído bajo lock, y totales de la orden.
func buildOrder(
	orderID string,
	now time.Time,
	staffID string,
	customer *entity.Customer,
	c *cart.Cart,
	products []*entity.Product,
) *entity.Order {
	items := make([]*entity.OrderItem, len(c.Lines))
	results := make([]pricing.LineResult, len(c.Lines))
	for i, line := range c.Lines {
		p := products[i]
		it := &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			Position:    i,
			ProductID:   p.ID,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			UnitCost:    p.CostPrice,
			GSTRate:     p.GSTRate,
			DiscountPct: line.DiscountPct,
		}
		items[i] = it
		results[i] = it.Pricing()
	}
	totals := pricing.PriceOrder(results, c.OrderDiscountPct)

	order := &entity.Order{
		ID:                  orderID,
		CreatedAt:           now,
		StaffID:             staffID,
		OrderDiscountPct:    c.OrderDiscountPct,
		GrossSubtotal:       totals.GrossSubtotal,
		OrderDiscountAmount: totals.OrderDiscountAmount,
		Subtotal:            totals.Subtotal,
		TaxTotal:            totals.TaxTotal,
		GrandTotal:          totals.GrandTotal,
		ProfitAmount:        totals.ProfitTotal,
		Items:               items,
	}
	if customer != nil {
		id := customer.ID
		order.CustomerID = &id
	}
	return order
}

// abort registra la falla y la envuelve en PhaseError. Errores fuera de la taxonomía de dominio
// (driver, commit, contexto) se reportan como PersistenceError.
func (uc *Committer) abort(span trace.Span, phase Phase, orderID, staffID string, err error) error {
	if !isDomainError(err) {
		err = &domain.PersistenceError{Op: string(phase), Err: err}
	}
	reason := abortReason(err)
	metrics.CheckoutsTotal.WithLabelValues(string(PhaseAborted)).Inc()
	metrics.CheckoutAbortsTotal.WithLabelValues(string(phase), reason).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	uc.log.Warn().
		Err(err).
		Str("order_id", orderID).
		Str("staff_id", staffID).
		Str("phase", string(phase)).
		Str("reason", reason).
		Msg("checkout abortado")
	return &PhaseError{Phase: phase, Err: err}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrPersistence)
}

func abortReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "persistence"
	}
}
