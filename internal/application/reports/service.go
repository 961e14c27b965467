// Package reports contiene los resúmenes de ventas: dashboard (hoy y mes en curso),
// reporte diario y reporte mensual. Solo lectura sobre las órdenes confirmadas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Report totales de un período [From, To).
type Report struct {
	Label         string
	From          time.Time
	To            time.Time
	Orders        int
	Subtotal      money.Money
	TaxTotal      money.Money
	GrandTotal    money.Money
	Profit        money.Money
	AverageTicket money.Money
}

// Dashboard ventas y utilidad del día y del mes en curso.
type Dashboard struct {
	Today Report
	Month Report
}

// Service arma los reportes sobre OrderRepository.
type Service struct {
	orderRepo repository.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

// NewService construye el servicio. loc define dónde empieza cada día; nil usa time.Local.
func NewService(orderRepo repository.OrderRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{orderRepo: orderRepo, loc: loc, now: time.Now}
}

// Dashboard consulta hoy y el mes en curso en paralelo.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().In(s.loc)
	todayStart := startOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	type result struct {
		report *Report
		err    error
	}
	todayCh := make(chan result, 1)
	monthCh := make(chan result, 1)

	go func() {
		r, err := s.summarize(ctx, todayStart.Format(dayLayout), todayStart, todayStart.AddDate(0, 0, 1))
		todayCh <- result{r, err}
	}()
	go func() {
		r, err := s.summarize(ctx, monthStart.Format(monthLayout), monthStart, monthStart.AddDate(0, 1, 0))
		monthCh <- result{r, err}
	}()

	today := <-todayCh
	month := <-monthCh
	if today.err != nil {
		return nil, fmt.Errorf("ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("ventas del mes: %w", month.err)
	}
	return &Dashboard{Today: *today.report, Month: *month.report}, nil
}

// Daily totales del día indicado.
func (s *Service) Daily(ctx context.Context, day time.Time) (*Report, error) {
	start := startOfDay(day.In(s.loc))
	return s.summarize(ctx, start.Format(dayLayout), start, start.AddDate(0, 0, 1))
}

// Monthly totales del mes indicado.
func (s *Service) Monthly(ctx context.Context, year int, month time.Month) (*Report, error) {
	if month < time.January || month > time.December {
		return nil, domain.Invalid("month", "debe estar entre 1 y 12")
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return s.summarize(ctx, start.Format(monthLayout), start, start.AddDate(0, 1, 0))
}

// ParseDay interpreta YYYY-MM-DD; vacío significa hoy.
func (s *Service) ParseDay(raw string) (time.Time, error) {
	if raw == "" {
		return startOfDay(s.now().In(s.loc)), nil
	}
	d, err := time.ParseInLocation(dayLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, domain.Invalid("date", "formato esperado YYYY-MM-DD")
	}
	return d, nil
}

// ParseMonth interpreta YYYY-MM; vacío significa el mes en curso.
func (s *Service) ParseMonth(raw string) (int, time.Month, error) {
	if raw == "" {
		now := s.now().In(s.loc)
		return now.Year(), now.Month(), nil
	}
	d, err := time.ParseInLocation(monthLayout, raw, s.loc)
	if err != nil {
		return 0, 0, domain.Invalid("month", "formato esperado YYYY-MM")
	}
	return d.Year(), d.Month(), nil
}

func (s *Service) summarize(ctx context.Context, label string, from, to time.Time) (*Report, error) {
	sum, err := s.orderRepo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return newReport(label, from, to, sum), nil
}

func newReport(label string, from, to time.Time, sum *entity.SalesSummary) *Report {
	r := &Report{
		Label:         label,
		From:          from,
		To:            to,
		Orders:        sum.Orders,
		Subtotal:      sum.Subtotal,
		TaxTotal:      sum.TaxTotal,
		GrandTotal:    sum.GrandTotal,
		Profit:        sum.Profit,
		AverageTicket: money.Zero,
	}
	if sum.Orders > 0 {
		r.AverageTicket = money.FromDecimal(sum.GrandTotal.Decimal().Div(decimal.NewFromInt(int64(sum.Orders))))
	}
	return r
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
