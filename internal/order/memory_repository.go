package order

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.Mutex
	orders []Order
	items  map[string][]Item
	index  map[string]int
}

// NewMemoryRepository constructs a concurrency-safe in-memory repository
// used in development mode and in tests. Orders are kept in insertion order.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		items: make(map[string][]Item),
		index: make(map[string]int),
	}
}

func (r *memoryRepository) Create(_ context.Context, o Order, items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[o.ID]; exists {
		return ErrConflict
	}
	r.index[o.ID] = len(r.orders)
	r.orders = append(r.orders, o)
	r.items[o.ID] = append([]Item(nil), items...)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return r.orders[i], nil
}

func (r *memoryRepository) ListByEmail(_ context.Context, email string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].Email == email {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *memoryRepository) ListRecent(_ context.Context, limit int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for i := len(r.orders) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *memoryRepository) Items(_ context.Context, orderID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Item(nil), r.items[orderID]...), nil
}

// UpdateStatus checks and flips the status under one lock acquisition,
// mirroring the conditional-update semantics of the Postgres repository.
func (r *memoryRepository) UpdateStatus(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok || r.orders[i].Status != from {
		return false, nil
	}
	r.orders[i].Status = to
	return true, nil
}

func (r *memoryRepository) SetItemPIN(_ context.Context, orderID, itemID, pin string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items[orderID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].PIN = pin
			return true, nil
		}
	}
	return false, nil
}
