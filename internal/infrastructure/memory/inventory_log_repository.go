package memory

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

type inventoryLogRepo struct {
	s  *Store
	tx *state
}

func (r *inventoryLogRepo) Append(ctx context.Context, e *entity.InventoryLog) error {
	return r.s.view(r.tx, func(st *state) error {
		if err := r.s.fault("log.append"); err != nil {
			return err
		}
		cp := *e
		st.logs = append(st.logs, &cp)
		return nil
	})
}

// ListByProduct más reciente primero (orden inverso de inserción).
func (r *inventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.s.view(r.tx, func(st *state) error {
		for i := len(st.logs) - 1; i >= 0; i-- {
			if st.logs[i].ProductID != productID {
				continue
			}
			cp := *st.logs[i]
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *inventoryLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.s.view(r.tx, func(st *state) error {
		for _, e := range st.logs {
			if e.OrderID != nil && *e.OrderID == orderID {
				cp := *e
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}
