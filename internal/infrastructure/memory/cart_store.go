package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/grocery-pos/internal/application/cart"
)

var _ cart.Store = (*CartStore)(nil)

// CartStore carritos en memoria del proceso (un solo nodo, sin expiración).
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]*cart.Cart{}}
}

func (s *CartStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[sessionID]; ok {
		return c.Clone(), nil
	}
	return cart.New(sessionID), nil
}

func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.SessionID] = c.Clone()
	return nil
}

func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
