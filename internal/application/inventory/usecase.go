package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/grocery-pos/internal/domain/inventory"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
	"github.com/jhoicas/grocery-pos/pkg/logger"
	"github.com/jhoicas/grocery-pos/pkg/metrics"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Ledger es dueño de los contadores de stock: consulta consultiva, descuento autoritativo dentro
// de la transacción del caller, reposición y ajustes. Cada cambio agrega un InventoryLog.
type Ledger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	log         *logger.Logger
}

// NewLedger construye el ledger. productRepo y logRepo son los del pool (fuera de transacción).
func NewLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	log *logger.Logger,
) *Ledger {
	return &Ledger{
		txRunner:    txRunner,
		productRepo: productRepo,
		logRepo:     logRepo,
		log:         log,
	}
}

// CheckAvailability indica si hay stock >= qty en este momento. Solo lectura y no reserva nada;
// otra venta puede agotar el stock antes del checkout.
func (l *Ledger) CheckAvailability(ctx context.Context, productID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, domain.Invalid("quantity", "debe ser mayor a 0")
	}
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	return product.StockQty >= qty, nil
}

// CommitDecrementInTx descuenta qty usando los repositorios del caller (misma transacción).
// Bloquea la fila, vuelve a verificar el stock en este momento, descuenta y agrega un log "sale".
// Devuelve el producto leído bajo bloqueo (precio y GST vigentes para el snapshot de la línea).
// Si retorna error el caller debe abortar toda la transacción.
func (l *Ledger) CommitDecrementInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	productID string,
	qty int,
	staffID, orderID string,
	now time.Time,
) (*entity.Product, error) {
	if qty <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor a 0")
	}
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, l.stockFailure(err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if product.StockQty < qty {
		return nil, l.stockFailure(&domain.InsufficientStockError{
			ProductID: product.ID,
			SKU:       product.SKU,
			Available: product.StockQty,
			Requested: qty,
		})
	}
	newQty, ok, err := productRepo.UpdateStock(ctx, productID, -qty)
	if err != nil {
		return nil, l.stockFailure(err)
	}
	if !ok {
		return nil, l.stockFailure(&domain.InsufficientStockError{
			ProductID: product.ID,
			SKU:       product.SKU,
			Available: product.StockQty,
			Requested: qty,
			Conflict:  true,
		})
	}
	product.StockQty = newQty

	entry := &entity.InventoryLog{
		ID:        uuid.New().String(),
		ProductID: productID,
		ChangeQty: -qty,
		Reason:    entity.ReasonSale,
		StaffID:   staffID,
		OrderID:   &orderID,
		Note:      "Order #" + orderID,
		CreatedAt: now,
	}
	if err := logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	metrics.InventoryMovementsTotal.WithLabelValues(entity.ReasonSale).Inc()
	return product, nil
}

func (l *Ledger) stockFailure(err error) error {
	switch {
	case errors.Is(err, domain.ErrConcurrencyConflict):
		metrics.StockDecrementsFailed.WithLabelValues("conflict").Inc()
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.StockDecrementsFailed.WithLabelValues("insufficient").Inc()
	}
	return err
}

// Refill suma qty al stock en su propia transacción y agrega un log "refill".
func (l *Ledger) Refill(ctx context.Context, productID string, qty int, staffID, note string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if qty <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor a 0")
	}
	if staffID == "" {
		return nil, domain.Invalid("staff_id", "requerido")
	}
	if note == "" {
		note = "Refill"
	}
	return l.apply(ctx, productID, qty, entity.ReasonRefill, staffID, note, nil)
}

// RefillAtCost igual que Refill pero con el costo unitario de la entrada: el cost_price del
// producto pasa a ser el promedio ponderado entre el stock existente y lo que entra.
func (l *Ledger) RefillAtCost(ctx context.Context, productID string, qty int, unitCost money.Money, staffID, note string) (*entity.Product, error) {
	if unitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost", "no puede ser negativo")
	}
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if qty <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor a 0")
	}
	if staffID == "" {
		return nil, domain.Invalid("staff_id", "requerido")
	}
	if note == "" {
		note = "Refill"
	}
	return l.apply(ctx, productID, qty, entity.ReasonRefill, staffID, note, &unitCost)
}

// Adjust aplica una corrección con signo (conteo físico, merma). Nunca deja el stock negativo.
func (l *Ledger) Adjust(ctx context.Context, productID string, delta int, staffID, note string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if delta == 0 {
		return nil, domain.Invalid("change_qty", "no puede ser 0")
	}
	if staffID == "" {
		return nil, domain.Invalid("staff_id", "requerido")
	}
	return l.apply(ctx, productID, delta, entity.ReasonAdjustment, staffID, note, nil)
}

// apply mueve el stock en su propia transacción. unitCost != nil recalcula el costo promedio
// antes de sumar la entrada.
func (l *Ledger) apply(ctx context.Context, productID string, delta int, reason, staffID, note string, unitCost *money.Money) (*entity.Product, error) {
	var updated *entity.Product
	now := time.Now()
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if unitCost != nil {
			product.CostPrice = domaininv.WeightedAverageCost(product.StockQty, product.CostPrice, delta, *unitCost)
			if err := productRepo.UpdateCatalog(ctx, product); err != nil {
				return err
			}
		}
		newQty, ok, err := productRepo.UpdateStock(ctx, productID, delta)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				SKU:       product.SKU,
				Available: product.StockQty,
				Requested: -delta,
			}
		}
		product.StockQty = newQty
		updated = product
		return logRepo.Append(ctx, &entity.InventoryLog{
			ID:        uuid.New().String(),
			ProductID: productID,
			ChangeQty: delta,
			Reason:    reason,
			StaffID:   staffID,
			Note:      note,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.InventoryMovementsTotal.WithLabelValues(reason).Inc()
	l.log.Info().
		Str("product_id", productID).
		Str("reason", reason).
		Int("change_qty", delta).
		Int("stock_qty", updated.StockQty).
		Str("staff_id", staffID).
		Msg("movimiento de inventario")
	return updated, nil
}

// History devuelve los últimos movimientos de un producto (más reciente primero).
func (l *Ledger) History(ctx context.Context, productID string, limit int) ([]*entity.InventoryLog, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return l.logRepo.ListByProduct(ctx, productID, limit)
}
