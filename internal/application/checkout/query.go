package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/pricing"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

const maxRecentOrders = 200

// LineDetail línea de una orden con los montos recalculados desde su snapshot.
type LineDetail struct {
	Item   *entity.OrderItem
	Prices pricing.LineResult
	CGST   decimal.Decimal
	SGST   decimal.Decimal
}

// OrderDetail orden completa para factura o recibo.
type OrderDetail struct {
	Order    *entity.Order
	Customer *entity.Customer
	Lines    []LineDetail
}

// OrderQuery lado de lectura de órdenes confirmadas.
type OrderQuery struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	defaultLimit int
}

func NewOrderQuery(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, defaultLimit int) *OrderQuery {
	if defaultLimit <= 0 || defaultLimit > maxRecentOrders {
		defaultLimit = 20
	}
	return &OrderQuery{orderRepo: orderRepo, customerRepo: customerRepo, defaultLimit: defaultLimit}
}

// GetOrder devuelve la orden con sus líneas. Los montos por línea se recalculan desde
// precio, descuento, GST y cantidad guardados; no dependen del catálogo actual.
func (q *OrderQuery) GetOrder(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := q.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", id, domain.ErrNotFound)
	}
	items, err := q.orderRepo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	detail := &OrderDetail{Order: order, Lines: make([]LineDetail, len(items))}
	for i, it := range items {
		prices := it.Pricing()
		cgst, sgst := prices.TaxSplit()
		detail.Lines[i] = LineDetail{Item: it, Prices: prices, CGST: cgst, SGST: sgst}
	}
	if order.CustomerID != nil {
		customer, err := q.customerRepo.GetByID(ctx, *order.CustomerID)
		if err != nil {
			return nil, err
		}
		detail.Customer = customer
	}
	return detail, nil
}

// ListRecent órdenes más recientes primero, sin líneas. limit <= 0 usa el valor por defecto.
func (q *OrderQuery) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = q.defaultLimit
	}
	if limit > maxRecentOrders {
		return nil, domain.Invalid("limit", fmt.Sprintf("máximo %d", maxRecentOrders))
	}
	return q.orderRepo.ListRecent(ctx, limit)
}
