package order

import (
	"errors"
	"time"
)

// Order statuses. Completed and Refunded are terminal.
const (
	StatusPendingPayment = "Pending Payment"
	StatusProcessing     = "Processing"
	StatusCompleted      = "Completed"
	StatusCancelled      = "Cancelled"
	StatusRefunded       = "Refunded"
)

// Payment methods accepted at checkout.
const (
	MethodWallet = "LF Wallet"
	MethodIPay88 = "iPay88"
)

var validTransitions = map[string][]string{
	StatusPendingPayment: {StatusCancelled},
	StatusProcessing:     {StatusCompleted, StatusCancelled},
	StatusCancelled:      {StatusRefunded},
}

// CanTransition reports whether the workflow allows moving an order from one
// status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order is one checkout transaction. Total is in minor units (sen) and is
// validated against the item subtotals at creation time.
type Order struct {
	ID        string
	Email     string
	Total     int64
	Method    string
	Status    string
	CreatedAt time.Time
}

// Item is one purchased line of an order. UnitPrice is the price locked at
// checkout, never re-derived from the live catalog. PIN is the only field
// mutable after creation; an admin assigns it when fulfilling card-based
// digital goods.
type Item struct {
	ID        string
	OrderID   string
	Line      int
	Game      string
	Package   string
	Quantity  int
	UnitPrice int64
	UID       string
	PIN       string
}

var (
	// ErrInvalidPayload marks user-correctable request problems, detected
	// before any mutation.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrNotFound marks an unknown order or order item.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidTransition marks an illegal state-machine move.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict marks a lost race on a conditional update after the
	// internal retry was also lost.
	ErrConflict = errors.New("conflicting concurrent update")
)
