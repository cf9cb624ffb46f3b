package oteltrace

import (
	"context"

	"github.com/leafcart/storefront/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New wraps the globally configured OTel tracer in the TraceCtx port.
func New(name string) observability.TraceCtx {
	return &tracer{t: otel.Tracer(name)}
}

func (tr *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tr.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
