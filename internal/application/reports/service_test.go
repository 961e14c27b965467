package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
)

func seedOrder(t *testing.T, store *memory.Store, id string, at time.Time, subtotal, tax, profit string) {
	t.Helper()
	sub, tx := money.MustParse(subtotal), money.MustParse(tax)
	require.NoError(t, store.Orders().Create(context.Background(), &entity.Order{
		ID:            id,
		CreatedAt:     at,
		StaffID:       "staff-1",
		GrossSubtotal: sub,
		Subtotal:      sub,
		TaxTotal:      tx,
		GrandTotal:    sub.Add(tx),
		ProfitAmount:  money.MustParse(profit),
	}))
}

func newService(t *testing.T, now time.Time) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store.Orders(), time.UTC)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestDashboard_HoyYMes(t *testing.T) {
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)
	svc, store := newService(t, now)
	seedOrder(t, store, "o1", now.Add(-time.Hour), "100.00", "5.00", "20.00")
	seedOrder(t, store, "o2", now.Add(-2*time.Hour), "50.00", "2.50", "10.00")
	seedOrder(t, store, "o3", time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), "200.00", "36.00", "40.00")
	seedOrder(t, store, "o4", time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC), "999.00", "0.00", "1.00")

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-03-15", d.Today.Label)
	assert.Equal(t, 2, d.Today.Orders)
	assert.Equal(t, "157.50", d.Today.GrandTotal.String())
	assert.Equal(t, "30.00", d.Today.Profit.String())
	assert.Equal(t, "78.75", d.Today.AverageTicket.String())

	assert.Equal(t, "2025-03", d.Month.Label)
	assert.Equal(t, 3, d.Month.Orders)
	assert.Equal(t, "350.00", d.Month.Subtotal.String())
	assert.Equal(t, "43.50", d.Month.TaxTotal.String())
	assert.Equal(t, "393.50", d.Month.GrandTotal.String())
	assert.Equal(t, "70.00", d.Month.Profit.String())
}

func TestDaily_SinVentas(t *testing.T) {
	svc, _ := newService(t, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))
	day, err := svc.ParseDay("2025-01-01")
	require.NoError(t, err)

	r, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Orders)
	assert.True(t, r.GrandTotal.IsZero())
	assert.True(t, r.AverageTicket.IsZero())
	assert.Equal(t, day.AddDate(0, 0, 1), r.To)
}

func TestDaily_LimitesDelDia(t *testing.T) {
	svc, store := newService(t, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	seedOrder(t, store, "inicio", day, "10.00", "0.50", "1.00")
	seedOrder(t, store, "fin", day.Add(24*time.Hour-time.Second), "20.00", "1.00", "2.00")
	seedOrder(t, store, "siguiente", day.Add(24*time.Hour), "40.00", "2.00", "4.00")

	r, err := svc.Daily(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Orders)
	assert.Equal(t, "30.00", r.Subtotal.String())
	assert.Equal(t, "1.50", r.TaxTotal.String())
}

func TestMonthly_Diciembre(t *testing.T) {
	svc, store := newService(t, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))
	seedOrder(t, store, "dic", time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), "10.00", "1.80", "3.00")
	seedOrder(t, store, "ene", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "10.00", "1.80", "3.00")

	year, month, err := svc.ParseMonth("2024-12")
	require.NoError(t, err)
	r, err := svc.Monthly(context.Background(), year, month)
	require.NoError(t, err)
	assert.Equal(t, "2024-12", r.Label)
	assert.Equal(t, 1, r.Orders)
	assert.Equal(t, "11.80", r.GrandTotal.String())
}

func TestParse_FormatoInvalido(t *testing.T) {
	svc, _ := newService(t, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.ParseDay("15/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.ParseMonth("2025-13")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Monthly(context.Background(), 2025, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	year, month, err := svc.ParseMonth("")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.March, month)
}
