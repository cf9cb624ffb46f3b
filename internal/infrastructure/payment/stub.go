package payment

import (
	"context"

	domain "github.com/leafcart/storefront/internal/domain/payment"
)

// Gateway modes selectable via payment.mode.
const (
	ModeStub    = "stub"
	ModeDecline = "decline"
)

// DeclineToken forces a declined charge; useful in demos and tests.
const DeclineToken = "declined"

// NewGateway returns the gateway implementation for the configured mode.
// Unknown modes fall back to the stub.
func NewGateway(mode string) domain.Gateway {
	if mode == ModeDecline {
		return NewDeclineGateway()
	}
	return NewStubGateway()
}

// StubGateway stands in for the real payment provider. It approves every
// charge with a non-empty token except the literal decline token.
type StubGateway struct{}

func NewStubGateway() *StubGateway { return &StubGateway{} }

func (g *StubGateway) Charge(ctx context.Context, amountCents int64, token string) error {
	_ = ctx
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}
	if token == "" || token == DeclineToken {
		return domain.ErrDeclined
	}
	return nil
}

// DeclineGateway refuses every charge. Wired in environments where checkout
// must never complete against real data.
type DeclineGateway struct{}

func NewDeclineGateway() *DeclineGateway { return &DeclineGateway{} }

func (g *DeclineGateway) Charge(ctx context.Context, amountCents int64, token string) error {
	_ = ctx
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}
	return domain.ErrDeclined
}
