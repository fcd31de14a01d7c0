package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Wallet holds the stored balance for one account, keyed by the normalized
// account email. Amounts are integer minor units (sen).
type Wallet struct {
	Email     string
	Balance   int64
	CreatedAt time.Time
}

// ErrInvalidAmount occurs when a credit or debit is requested with a
// non-positive amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds is the sentinel matched by errors.Is when a debit
// would drive the balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError carries the current balance so callers can surface
// it to the client.
type InsufficientFundsError struct {
	Balance int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %d", e.Balance)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// NormalizeEmail lower-cases and trims an account email. All wallet and
// order rows are keyed by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
