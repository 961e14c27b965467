package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/application/inventory"
	"github.com/jhoicas/grocery-pos/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ checkout.TxRunner  = (*Store)(nil)
)

// Store almacenamiento en memoria con transacciones: cada Run/RunCheckout toma el lock global,
// trabaja sobre una copia del estado y la publica solo si fn no falla. Las transacciones quedan
// serializadas, equivalente a aislamiento serializable.
type Store struct {
	mu     sync.Mutex
	state  *state
	faults map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState(), faults: map[string]error{}}
}

// FailOn hace que la próxima llamada a op ("order.create", "order.create_item", "log.append",
// "customer.create") devuelva err. Sirve para probar rollback en la fase de persistencia.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault consume el fallo programado para op. El caller ya tiene el lock.
func (s *Store) fault(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// Products, Customers, Orders, InventoryLogs, Users y Categories devuelven repos fuera de transacción.
func (s *Store) Products() repository.ProductRepository           { return &productRepo{s: s} }
func (s *Store) Customers() repository.CustomerRepository         { return &customerRepo{s: s} }
func (s *Store) Orders() repository.OrderRepository               { return &orderRepo{s: s} }
func (s *Store) InventoryLogs() repository.InventoryLogRepository { return &inventoryLogRepo{s: s} }
func (s *Store) Users() repository.UserRepository                 { return &userRepo{s: s} }
func (s *Store) Categories() repository.CategoryRepository        { return &categoryRepo{s: s} }

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(&productRepo{s: s, tx: tx}, &inventoryLogRepo{s: s, tx: tx})
	})
}

// RunCheckout implementa checkout.TxRunner.
func (s *Store) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(
			&productRepo{s: s, tx: tx},
			&customerRepo{s: s, tx: tx},
			&orderRepo{s: s, tx: tx},
			&inventoryLogRepo{s: s, tx: tx},
		)
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(staged); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// view ejecuta fn sobre el estado de la tx, o sobre el estado publicado tomando el lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}
