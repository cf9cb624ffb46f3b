// Package logctx carries the request-scoped logger through context. The
// HTTP middleware injects a logger enriched with request_id and trace ids;
// services pick it up with FromOr so log lines correlate per request.
package logctx

import (
	"context"

	"github.com/leafcart/storefront/internal/observability"
)

type ctxKey struct{}

// With returns a context carrying the logger.
func With(ctx context.Context, logger observability.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromOr returns the request logger stored on the context, or fallback when
// the request carried none (direct service calls, background goroutines).
func FromOr(ctx context.Context, fallback observability.Logger) observability.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(observability.Logger); ok {
			return logger
		}
	}
	return fallback
}
