package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

type orderRepo struct {
	s  *Store
	tx *state
}

func (r *orderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.s.view(r.tx, func(st *state) error {
		if err := r.s.fault("order.create"); err != nil {
			return err
		}
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("orden %s: %w", o.ID, domain.ErrDuplicate)
		}
		cp := *o
		cp.Items = nil
		st.orders[o.ID] = &cp
		return nil
	})
}

func (r *orderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	return r.s.view(r.tx, func(st *state) error {
		if err := r.s.fault("order.create_item"); err != nil {
			return err
		}
		if _, ok := st.orders[it.OrderID]; !ok {
			return fmt.Errorf("orden %s: %w", it.OrderID, domain.ErrNotFound)
		}
		cp := *it
		st.items[it.OrderID] = append(st.items[it.OrderID], &cp)
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.view(r.tx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			cp := *o
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.s.view(r.tx, func(st *state) error {
		for _, it := range st.items[orderID] {
			cp := *it
			out = append(out, &cp)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.s.view(r.tx, func(st *state) error {
		all := make([]*entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			cp := *o
			all = append(all, &cp)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
		out = page(all, limit, 0)
		return nil
	})
	return out, err
}

func (r *orderRepo) SalesSummary(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error) {
	out := &entity.SalesSummary{Subtotal: money.Zero, TaxTotal: money.Zero, GrandTotal: money.Zero, Profit: money.Zero}
	err := r.s.view(r.tx, func(st *state) error {
		for _, o := range st.orders {
			if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
				continue
			}
			out.Orders++
			out.Subtotal = out.Subtotal.Add(o.Subtotal)
			out.TaxTotal = out.TaxTotal.Add(o.TaxTotal)
			out.GrandTotal = out.GrandTotal.Add(o.GrandTotal)
			out.Profit = out.Profit.Add(o.ProfitAmount)
		}
		return nil
	})
	return out, err
}
