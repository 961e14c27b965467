package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

type customerRepo struct {
	s  *Store
	tx *state
}

func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(r.tx, func(st *state) error {
		for _, c := range st.customers {
			if c.Phone == phone {
				cp := *c
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(r.tx, func(st *state) error {
		if c, ok := st.customers[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.s.view(r.tx, func(st *state) error {
		if err := r.s.fault("customer.create"); err != nil {
			return err
		}
		for _, other := range st.customers {
			if other.Phone == c.Phone {
				return fmt.Errorf("teléfono %s: %w", c.Phone, domain.ErrDuplicate)
			}
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		cp := *c
		st.customers[c.ID] = &cp
		return nil
	})
}
