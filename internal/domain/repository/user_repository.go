package repository

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (operadores referenciados por órdenes y logs).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
