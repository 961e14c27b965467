package checkout

import (
	"context"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

const EventTypeOrderCommitted = "ORDER_COMMITTED"

// OrderCommittedEvent se publica una vez confirmada la transacción.
type OrderCommittedEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OrderID    string          `json:"order_id"`
	StaffID    string          `json:"staff_id"`
	CustomerID *string         `json:"customer_id,omitempty"`
	Subtotal   money.Money     `json:"subtotal"`
	TaxTotal   money.Money     `json:"tax_total"`
	GrandTotal money.Money     `json:"grand_total"`
	Lines      []CommittedLine `json:"lines"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// CommittedLine movimiento de stock de la orden.
type CommittedLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func newOrderCommittedEvent(eventID string, o *entity.Order) OrderCommittedEvent {
	lines := make([]CommittedLine, len(o.Items))
	for i, it := range o.Items {
		lines[i] = CommittedLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return OrderCommittedEvent{
		EventID:    eventID,
		EventType:  EventTypeOrderCommitted,
		OrderID:    o.ID,
		StaffID:    o.StaffID,
		CustomerID: o.CustomerID,
		Subtotal:   o.Subtotal,
		TaxTotal:   o.TaxTotal,
		GrandTotal: o.GrandTotal,
		Lines:      lines,
		OccurredAt: o.CreatedAt,
	}
}

// NopPublisher descarta los eventos (Kafka deshabilitado).
type NopPublisher struct{}

func (NopPublisher) PublishOrderCommitted(context.Context, OrderCommittedEvent) error { return nil }
