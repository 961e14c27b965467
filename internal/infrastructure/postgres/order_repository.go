package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, created_at, customer_id, staff_id, order_discount_pct, gross_subtotal,
	order_discount_amount, subtotal, tax_total, grand_total, profit_amount`

// OrderRepo implementación de OrderRepository (cabecera + líneas). Usable con pool o tx.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera de la orden (las líneas van con CreateItem).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.CreatedAt, o.CustomerID, o.StaffID, o.OrderDiscountPct, o.GrossSubtotal.Decimal(),
		o.OrderDiscountAmount.Decimal(), o.Subtotal.Decimal(), o.TaxTotal.Decimal(), o.GrandTotal.Decimal(),
		o.ProfitAmount.Decimal(),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea con el snapshot de precio, costo y GST.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items (id, order_id, position, product_id, quantity, unit_price, unit_cost, gst_rate, discount_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		it.ID, it.OrderID, it.Position, it.ProductID, it.Quantity,
		it.UnitPrice.Decimal(), it.UnitCost.Decimal(), it.GSTRate, it.DiscountPct,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var (
		o                                                  entity.Order
		gross, discount, subtotal, tax, grandTotal, profit decimal.Decimal
	)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.CustomerID, &o.StaffID, &o.OrderDiscountPct, &gross,
		&discount, &subtotal, &tax, &grandTotal, &profit); err != nil {
		return nil, err
	}
	o.GrossSubtotal = money.FromDecimal(gross)
	o.OrderDiscountAmount = money.FromDecimal(discount)
	o.Subtotal = money.FromDecimal(subtotal)
	o.TaxTotal = money.FromDecimal(tax)
	o.GrandTotal = money.FromDecimal(grandTotal)
	o.ProfitAmount = money.FromDecimal(profit)
	return &o, nil
}

// GetByID obtiene la cabecera de la orden (sin líneas).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetItems líneas de la orden en el orden del carrito.
func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, position, product_id, quantity, unit_price, unit_cost, gst_rate, discount_pct
		FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var (
			it          entity.OrderItem
			price, cost decimal.Decimal
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Position, &it.ProductID, &it.Quantity,
			&price, &cost, &it.GSTRate, &it.DiscountPct); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.UnitPrice = money.FromDecimal(price)
		it.UnitCost = money.FromDecimal(cost)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListRecent órdenes más recientes primero.
func (r *OrderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// SalesSummary agrega las órdenes de [from, to) en una sola consulta.
func (r *OrderRepo) SalesSummary(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error) {
	var (
		out                               entity.SalesSummary
		subtotal, tax, grandTotal, profit decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(tax_total), 0),
		       COALESCE(SUM(grand_total), 0),
		       COALESCE(SUM(profit_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&out.Orders, &subtotal, &tax, &grandTotal, &profit)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	out.Subtotal = money.FromDecimal(subtotal)
	out.TaxTotal = money.FromDecimal(tax)
	out.GrandTotal = money.FromDecimal(grandTotal)
	out.Profit = money.FromDecimal(profit)
	return &out, nil
}
