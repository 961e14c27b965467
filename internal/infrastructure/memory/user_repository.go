package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

type userRepo struct {
	s  *Store
	tx *state
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.s.view(r.tx, func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Username, u.Username) {
				return fmt.Errorf("usuario %s: %w", u.Username, domain.ErrDuplicate)
			}
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		cp := *u
		st.users[u.ID] = &cp
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(r.tx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(r.tx, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Username, username) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}
