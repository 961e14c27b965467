package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

const inventoryLogColumns = `id, product_id, change_qty, reason, staff_id, order_id, note, created_at`

// InventoryLogRepo auditoría de stock (solo INSERT). Usable con pool o tx.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta una entrada. El FK a orders es diferido: la venta se registra antes que la cabecera.
func (r *InventoryLogRepo) Append(ctx context.Context, e *entity.InventoryLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_logs (`+inventoryLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProductID, e.ChangeQty, e.Reason, e.StaffID, e.OrderID, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByProduct últimos movimientos de un producto, más reciente primero.
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryLog, error) {
	return r.list(ctx, `SELECT `+inventoryLogColumns+` FROM inventory_logs
		WHERE product_id = $1 ORDER BY seq DESC LIMIT $2`, productID, limit)
}

// ListByOrder movimientos de venta de una orden.
func (r *InventoryLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryLog, error) {
	return r.list(ctx, `SELECT `+inventoryLogColumns+` FROM inventory_logs
		WHERE order_id = $1 ORDER BY seq`, orderID)
}

func (r *InventoryLogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryLog, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var e entity.InventoryLog
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ChangeQty, &e.Reason, &e.StaffID, &e.OrderID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
