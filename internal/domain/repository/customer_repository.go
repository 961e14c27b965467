package repository

import (
	"context"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// Create inserta el cliente; si el teléfono ya existe devuelve domain.ErrDuplicate.
	Create(ctx context.Context, customer *entity.Customer) error
}
