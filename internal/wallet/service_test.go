package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestBalanceMissingWalletReadsZero(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	balance, err := svc.Balance(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0, got %d", balance)
	}

	// Reading must not create the wallet; a later read still sees 0.
	balance, err = svc.Balance(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0 after repeat read, got %d", balance)
	}
}

func TestCreditCreatesAndAccumulates(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	balance, err := svc.Credit(ctx, "buyer@example.com", 1_000)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if balance != 1_000 {
		t.Fatalf("expected balance 1000, got %d", balance)
	}

	balance, err = svc.Credit(ctx, "buyer@example.com", 500)
	if err != nil {
		t.Fatalf("second credit: %v", err)
	}
	if balance != 1_500 {
		t.Fatalf("expected balance 1500, got %d", balance)
	}
}

func TestCreditNormalizesEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Credit(ctx, "  Buyer@Example.COM ", 700); err != nil {
		t.Fatalf("credit: %v", err)
	}
	balance, err := svc.Balance(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 700 {
		t.Fatalf("expected balance 700, got %d", balance)
	}
}

func TestDebitInsufficientLeavesBalanceUntouched(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Credit(ctx, "buyer@example.com", 30); err != nil {
		t.Fatalf("credit: %v", err)
	}

	_, err := svc.Debit(ctx, "buyer@example.com", 50)
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if insufficient.Balance != 30 {
		t.Fatalf("expected reported balance 30, got %d", insufficient.Balance)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected error to unwrap to ErrInsufficientFunds")
	}

	balance, err := svc.Balance(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 30 {
		t.Fatalf("expected balance 30 after failed debit, got %d", balance)
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Debit(ctx, "buyer@example.com", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := svc.Debit(ctx, "buyer@example.com", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Credit(ctx, "buyer@example.com", 100); err != nil {
		t.Fatalf("credit: %v", err)
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Debit(ctx, "buyer@example.com", 80)
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			if !errors.Is(err, ErrInsufficientFunds) {
				t.Fatalf("unexpected debit error: %v", err)
			}
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly one debit to fail, got %d failures", failed)
	}

	balance, err := svc.Balance(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 20 {
		t.Fatalf("expected balance 20 after one debit, got %d", balance)
	}
}

func TestSetBalanceOverwrites(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Credit(ctx, "buyer@example.com", 900); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := svc.SetBalance(ctx, "buyer@example.com", 250); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	balance, err := svc.Balance(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 250 {
		t.Fatalf("expected balance 250, got %d", balance)
	}

	if err := svc.SetBalance(ctx, "buyer@example.com", -1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative balance, got %v", err)
	}
}

func TestEmailRequired(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Balance(ctx, "   "); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if _, err := svc.Credit(ctx, "", 10); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}
