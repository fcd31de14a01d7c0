package wallet

import (
	"context"
	"errors"
)

// Service is the single source of truth for account balances. Every debit
// and credit in the system goes through it.
type Service struct {
	repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ErrEmailRequired occurs when an operation is attempted without an account email.
var ErrEmailRequired = errors.New("email is required")

// Ensure guarantees a wallet exists for the account, starting at balance 0.
func (s *Service) Ensure(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	return s.repo.Ensure(ctx, email)
}

// Balance returns the spendable balance. A missing wallet reads as 0 and is
// not created; rows come into existence only through Ensure, Credit or
// SetBalance.
func (s *Service) Balance(ctx context.Context, email string) (int64, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return 0, ErrEmailRequired
	}
	return s.repo.Balance(ctx, email)
}

// Credit adds amount to the balance, creating the wallet if absent, and
// returns the new balance. There is no upper bound.
func (s *Service) Credit(ctx context.Context, email string, amount int64) (int64, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return 0, ErrEmailRequired
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.repo.Credit(ctx, email, amount)
}

// Debit subtracts amount from the balance and returns the new balance. It
// fails with an InsufficientFundsError carrying the current balance when
// amount exceeds it; the check and the decrement are one conditional store
// operation, so concurrent debits cannot overdraw the wallet.
func (s *Service) Debit(ctx context.Context, email string, amount int64) (int64, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return 0, ErrEmailRequired
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.repo.Debit(ctx, email, amount)
}

// SetBalance overwrites the balance unconditionally. Admin tooling only.
func (s *Service) SetBalance(ctx context.Context, email string, balance int64) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	if balance < 0 {
		return ErrInvalidAmount
	}
	return s.repo.Set(ctx, email, balance)
}
