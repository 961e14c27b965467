package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

type productRepo struct {
	s  *Store
	tx *state
}

func copyProduct(p entity.Product) *entity.Product {
	out := p
	if p.Barcode != nil {
		b := *p.Barcode
		out.Barcode = &b
	}
	return &out
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
			}
			if p.Barcode != nil && other.Barcode != nil && *other.Barcode == *p.Barcode {
				return fmt.Errorf("barcode %s: %w", *p.Barcode, domain.ErrDuplicate)
			}
		}
		if p.StockQty < 0 {
			return domain.Invalid("stock_qty", "no puede ser negativo")
		}
		now := time.Now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		st.products[p.ID] = *copyProduct(*p)
		return nil
	})
}

func (r *productRepo) UpdateCatalog(ctx context.Context, p *entity.Product) error {
	return r.s.view(r.tx, func(st *state) error {
		current, ok := st.products[p.ID]
		if !ok {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
		}
		for id, other := range st.products {
			if id != p.ID && p.Barcode != nil && other.Barcode != nil && *other.Barcode == *p.Barcode {
				return fmt.Errorf("barcode %s: %w", *p.Barcode, domain.ErrDuplicate)
			}
		}
		current.Barcode = p.Barcode
		current.Name = p.Name
		current.CategoryID = p.CategoryID
		current.Price = p.Price
		current.CostPrice = p.CostPrice
		current.GSTRate = p.GSTRate
		current.Unit = p.Unit
		current.UpdatedAt = time.Now()
		st.products[p.ID] = *copyProduct(current)
		p.StockQty = current.StockQty
		p.UpdatedAt = current.UpdatedAt
		return nil
	})
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.tx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.Barcode != nil && *p.Barcode == barcode })
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.SKU == sku })
}

func (r *productRepo) find(match func(entity.Product) bool) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.tx, func(st *state) error {
		for _, p := range st.products {
			if match(p) {
				out = copyProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una transacción el lock global ya serializa el acceso.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, delta int) (int, bool, error) {
	var (
		newQty int
		ok     bool
	)
	err := r.s.view(r.tx, func(st *state) error {
		p, found := st.products[id]
		if !found || p.StockQty+delta < 0 {
			return nil
		}
		p.StockQty += delta
		p.UpdatedAt = time.Now()
		st.products[id] = p
		newQty, ok = p.StockQty, true
		return nil
	})
	return newQty, ok, err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.view(r.tx, func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, copyProduct(p))
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
