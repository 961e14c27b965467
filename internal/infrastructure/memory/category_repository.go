package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

type categoryRepo struct {
	s  *Store
	tx *state
}

func (r *categoryRepo) GetOrCreate(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.view(r.tx, func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				cp := *c
				out = &cp
				return nil
			}
		}
		c := &entity.Category{ID: uuid.New().String(), Name: name}
		st.categories[c.ID] = c
		cp := *c
		out = &cp
		return nil
	})
	return out, err
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.view(r.tx, func(st *state) error {
		out = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			cp := *c
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}
