package cache

import (
	"context"
	"sync"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
)

// InMemoryOrderLocker implements holo.OrderLocker with a process-local map.
// Suitable for single-instance deployments and testing.
type InMemoryOrderLocker struct {
	mu    sync.Mutex
	held  map[string]struct{}
}

// NewInMemoryOrderLocker creates a new in-memory order locker
func NewInMemoryOrderLocker() *InMemoryOrderLocker {
	return &InMemoryOrderLocker{
		held: make(map[string]struct{}),
	}
}

// Acquire takes the lock for an order. It returns shared.ErrConcurrencyConflict
// when another fulfillment currently holds it.
func (l *InMemoryOrderLocker) Acquire(_ context.Context, orderID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[orderID]; taken {
		return nil, shared.ErrConcurrencyConflict
	}
	l.held[orderID] = struct{}{}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, orderID)
	}
	return release, nil
}

// Ensure InMemoryOrderLocker implements holo.OrderLocker
var _ holo.OrderLocker = (*InMemoryOrderLocker)(nil)
