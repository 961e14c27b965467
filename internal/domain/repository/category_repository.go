package repository

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	// GetOrCreate devuelve la categoría con ese nombre, creándola si no existe.
	GetOrCreate(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
