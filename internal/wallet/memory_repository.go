package wallet

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.Mutex
	wallets map[string]Wallet
}

// NewMemoryRepository constructs a concurrency-safe in-memory repository
// used in development mode and in tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{wallets: make(map[string]Wallet)}
}

func (r *memoryRepository) Ensure(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLocked(email)
	return nil
}

func (r *memoryRepository) Balance(_ context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wallets[email].Balance, nil
}

func (r *memoryRepository) Credit(_ context.Context, email string, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.ensureLocked(email)
	w.Balance += amount
	r.wallets[email] = w
	return w.Balance, nil
}

func (r *memoryRepository) Debit(_ context.Context, email string, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[email]
	if !ok || w.Balance < amount {
		return 0, &InsufficientFundsError{Balance: w.Balance}
	}
	w.Balance -= amount
	r.wallets[email] = w
	return w.Balance, nil
}

func (r *memoryRepository) Set(_ context.Context, email string, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.ensureLocked(email)
	w.Balance = balance
	r.wallets[email] = w
	return nil
}

func (r *memoryRepository) ensureLocked(email string) Wallet {
	w, ok := r.wallets[email]
	if !ok {
		w = Wallet{Email: email, CreatedAt: time.Now().UTC()}
		r.wallets[email] = w
	}
	return w
}
