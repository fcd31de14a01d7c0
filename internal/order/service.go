package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lelefon-gaming/lelefon-api/internal/gateway"
	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

// Service creates orders against a cart and drives them through the
// fulfillment state machine, coordinating with the wallet ledger for the
// wallet payment method.
type Service struct {
	repo    Repository
	wallets *wallet.Service
	gateway gateway.Gateway
	logger  *slog.Logger
}

// NewService builds an order service instance.
func NewService(repo Repository, wallets *wallet.Service, gw gateway.Gateway, logger *slog.Logger) *Service {
	if gw == nil {
		gw = gateway.StaticGateway{}
	}
	return &Service{repo: repo, wallets: wallets, gateway: gw, logger: logger}
}

// ItemInput is one cart line as submitted at checkout.
type ItemInput struct {
	Game      string
	Package   string
	Quantity  int
	UnitPrice int64
	UID       string
}

// CreateInput captures a checkout request.
type CreateInput struct {
	Email  string
	Items  []ItemInput
	Total  int64
	Method string
}

// CreateResult is the outcome of a checkout. Gateway is set only for
// externally paid orders.
type CreateResult struct {
	OrderID string
	Status  string
	Gateway *gateway.Session
}

// Create validates the cart, debits the wallet for wallet-paid orders, and
// persists the order header plus all items as one atomic batch. The debit
// happens before the write; a write failure after a successful debit is
// unrecoverable without transactions, so it is logged as a reconciliation
// event with the account, amount and attempted order id.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	in.Email = wallet.NormalizeEmail(in.Email)
	if err := validateCreate(in); err != nil {
		return CreateResult{}, err
	}

	orderID := "ORD-" + uuid.NewString()
	status := StatusPendingPayment
	if in.Method == MethodWallet {
		if _, err := s.wallets.Debit(ctx, in.Email, in.Total); err != nil {
			return CreateResult{}, err
		}
		status = StatusProcessing
	}

	o := Order{
		ID:        orderID,
		Email:     in.Email,
		Total:     in.Total,
		Method:    in.Method,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	items := make([]Item, len(in.Items))
	for i, it := range in.Items {
		items[i] = Item{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			Line:      i + 1,
			Game:      it.Game,
			Package:   it.Package,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UID:       it.UID,
		}
	}

	if err := s.repo.Create(ctx, o, items); err != nil {
		if in.Method == MethodWallet {
			s.logger.Error("order write failed after wallet debit, manual reconciliation required",
				slog.String("email", in.Email),
				slog.Int64("amount", in.Total),
				slog.String("order_id", orderID),
				slog.Any("error", err),
			)
		}
		return CreateResult{}, err
	}

	res := CreateResult{OrderID: orderID, Status: status}
	if in.Method == MethodIPay88 {
		sess, err := s.gateway.CreateSession(ctx, orderID, in.Total)
		if err != nil {
			// The order is already persisted as Pending Payment; the buyer
			// can retry the gateway handoff.
			s.logger.Warn("gateway session creation failed",
				slog.String("order_id", orderID), slog.Any("error", err))
		} else {
			res.Gateway = &sess
		}
	}
	return res, nil
}

func validateCreate(in CreateInput) error {
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidPayload)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", ErrInvalidPayload)
	}
	if in.Method != MethodWallet && in.Method != MethodIPay88 {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidPayload, in.Method)
	}
	if in.Total <= 0 {
		return fmt.Errorf("%w: total must be positive", ErrInvalidPayload)
	}
	var sum int64
	for i, it := range in.Items {
		if it.Game == "" || it.Package == "" {
			return fmt.Errorf("%w: item %d is missing game or package", ErrInvalidPayload, i+1)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidPayload, i+1)
		}
		if it.UnitPrice <= 0 {
			return fmt.Errorf("%w: item %d price must be positive", ErrInvalidPayload, i+1)
		}
		sum += it.UnitPrice * int64(it.Quantity)
	}
	if sum != in.Total {
		return fmt.Errorf("%w: total %d does not match item subtotals %d", ErrInvalidPayload, in.Total, sum)
	}
	return nil
}

// Complete moves a Processing order to Completed.
func (s *Service) Complete(ctx context.Context, id string) (string, error) {
	ok, err := s.repo.UpdateStatus(ctx, id, StatusProcessing, StatusCompleted)
	if err != nil {
		return "", err
	}
	if ok {
		return StatusCompleted, nil
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: cannot complete order in status %q", ErrInvalidTransition, o.Status)
}

// Cancel moves any non-terminal order to Cancelled. Cancelling an already
// Cancelled or Refunded order succeeds without mutation. A lost race on the
// conditional update is retried once before surfacing ErrConflict.
func (s *Service) Cancel(ctx context.Context, id string) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		o, err := s.repo.Get(ctx, id)
		if err != nil {
			return "", err
		}
		switch o.Status {
		case StatusCancelled, StatusRefunded:
			return o.Status, nil
		case StatusCompleted:
			return "", fmt.Errorf("%w: cannot cancel a completed order", ErrInvalidTransition)
		}
		ok, err := s.repo.UpdateStatus(ctx, id, o.Status, StatusCancelled)
		if err != nil {
			return "", err
		}
		if ok {
			return StatusCancelled, nil
		}
	}
	return "", ErrConflict
}

// Refund moves a Cancelled order to Refunded and, for wallet-paid orders,
// credits the wallet with the order total. The conditional Cancelled to
// Refunded update is the at-most-once guard: only the caller whose update
// affected a row performs the credit, so repeated or concurrent refunds can
// never credit twice.
func (s *Service) Refund(ctx context.Context, id string) (string, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if o.Status == StatusRefunded {
		return StatusRefunded, nil
	}

	ok, err := s.repo.UpdateStatus(ctx, id, StatusCancelled, StatusRefunded)
	if err != nil {
		return "", err
	}
	if !ok {
		o, err = s.repo.Get(ctx, id)
		if err != nil {
			return "", err
		}
		if o.Status == StatusRefunded {
			return StatusRefunded, nil
		}
		return "", fmt.Errorf("%w: refund requires a cancelled order, current status %q", ErrInvalidTransition, o.Status)
	}

	if o.Method == MethodWallet {
		if _, err := s.wallets.Credit(ctx, o.Email, o.Total); err != nil {
			s.logger.Error("wallet credit failed after refund transition, manual reconciliation required",
				slog.String("email", o.Email),
				slog.Int64("amount", o.Total),
				slog.String("order_id", o.ID),
				slog.Any("error", err),
			)
			return "", err
		}
	}
	return StatusRefunded, nil
}

// SetItemPIN assigns the redemption code of one order item. Allowed only
// while the order is Processing or Completed.
func (s *Service) SetItemPIN(ctx context.Context, orderID, itemID, pin string) error {
	if pin == "" {
		return fmt.Errorf("%w: pin is required", ErrInvalidPayload)
	}
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != StatusProcessing && o.Status != StatusCompleted {
		return fmt.Errorf("%w: cannot assign a pin to an order in status %q", ErrInvalidTransition, o.Status)
	}
	ok, err := s.repo.SetItemPIN(ctx, orderID, itemID, pin)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	return nil
}

// ListByEmail returns the account's orders, newest first.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	email = wallet.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidPayload)
	}
	return s.repo.ListByEmail(ctx, email)
}

// ListRecent returns up to limit orders across all accounts, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 200
	}
	return s.repo.ListRecent(ctx, limit)
}

// Items returns the order's items after checking the order exists.
func (s *Service) Items(ctx context.Context, orderID string) ([]Item, error) {
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.Items(ctx, orderID)
}
