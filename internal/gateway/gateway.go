package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Session is the checkout handoff returned for externally paid orders. The
// buyer is redirected to RedirectURL and the order stays in Pending Payment
// until the gateway confirms.
type Session struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway represents a connector to the external iPay88 payment processor.
type Gateway interface {
	CreateSession(ctx context.Context, orderID string, amount int64) (Session, error)
}

// StaticGateway simulates a successful gateway integration; no real gateway
// is ever contacted.
type StaticGateway struct{}

// CreateSession approves the checkout with a synthetic reference.
func (StaticGateway) CreateSession(_ context.Context, orderID string, _ int64) (Session, error) {
	ref := "IP88-" + uuid.NewString()
	return Session{
		Reference:   ref,
		RedirectURL: fmt.Sprintf("https://sandbox.ipay88.example/checkout/%s?order=%s", ref, orderID),
	}, nil
}
