package auditlog

import (
	"context"

	domain "github.com/leafcart/storefront/internal/domain/activity"
	"github.com/leafcart/storefront/internal/infrastructure/id"
)

// Sink receives entries for asynchronous persistence. The audit pipeline is
// the production implementation.
type Sink interface {
	Enqueue(ctx context.Context, entry domain.Entry)
}

// Logger is the fire-and-forget activity logger: it hands entries to the
// sink and never reports failure to the caller.
type Logger struct {
	sink  Sink
	idGen id.Generator
}

func NewLogger(sink Sink, idGen id.Generator) *Logger {
	return &Logger{sink: sink, idGen: idGen}
}

func (l *Logger) Log(ctx context.Context, userID, label string) {
	if l == nil || l.sink == nil {
		return
	}
	l.sink.Enqueue(ctx, domain.NewEntry(l.idGen.NewID(), userID, label))
}
