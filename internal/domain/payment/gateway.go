package payment

import (
	"context"
	"errors"
)

var (
	ErrDeclined      = errors.New("payment: declined")
	ErrInvalidAmount = errors.New("payment: amount must be greater than zero")
)

// Gateway is the external charge boundary. A declined charge is reported as
// ErrDeclined; any other error is a transport or gateway failure.
type Gateway interface {
	Charge(ctx context.Context, amountCents int64, token string) error
}
