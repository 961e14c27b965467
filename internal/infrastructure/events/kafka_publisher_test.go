package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishOrderCommitted(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, timeout: time.Second}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.PublishOrderCommitted(context.Background(), checkout.OrderCommittedEvent{
		EventID:    "e-1",
		EventType:  checkout.EventTypeOrderCommitted,
		OrderID:    "o-1",
		StaffID:    "staff-1",
		GrandTotal: money.MustParse("58.80"),
		Lines:      []checkout.CommittedLine{{ProductID: "p-1", Quantity: 2}},
		OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "o-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, checkout.EventTypeOrderCommitted, string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "58.80", body["grand_total"])
	assert.Equal(t, "o-1", body["order_id"])
}

func TestPublishOrderCommitted_ErrorDelBroker(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}, timeout: time.Second}
	err := p.PublishOrderCommitted(context.Background(), checkout.OrderCommittedEvent{OrderID: "o-1"})
	assert.ErrorContains(t, err, "leader not available")
}
