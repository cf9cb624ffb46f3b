package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/leafcart/storefront/internal/domain/payment"
)

func TestStubGatewayCharge(t *testing.T) {
	gateway := NewStubGateway()

	assert.NoError(t, gateway.Charge(context.Background(), 1000, "tok_ok"))
	assert.ErrorIs(t, gateway.Charge(context.Background(), 1000, DeclineToken), domain.ErrDeclined)
	assert.ErrorIs(t, gateway.Charge(context.Background(), 1000, ""), domain.ErrDeclined)
	assert.ErrorIs(t, gateway.Charge(context.Background(), 0, "tok_ok"), domain.ErrInvalidAmount)
	assert.ErrorIs(t, gateway.Charge(context.Background(), -5, "tok_ok"), domain.ErrInvalidAmount)
}

func TestDeclineGatewayCharge(t *testing.T) {
	gateway := NewDeclineGateway()

	assert.ErrorIs(t, gateway.Charge(context.Background(), 1000, "tok_ok"), domain.ErrDeclined)
	assert.ErrorIs(t, gateway.Charge(context.Background(), 0, "tok_ok"), domain.ErrInvalidAmount)
}

func TestNewGatewaySelectsMode(t *testing.T) {
	assert.IsType(t, &StubGateway{}, NewGateway(ModeStub))
	assert.IsType(t, &DeclineGateway{}, NewGateway(ModeDecline))
	assert.IsType(t, &StubGateway{}, NewGateway(""))
	assert.IsType(t, &StubGateway{}, NewGateway("unknown"))
}
