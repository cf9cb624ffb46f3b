// Package telemetry assembles the observability ports into the single
// Telemetry value injected into services and handlers at startup.
package telemetry

import (
	"github.com/leafcart/storefront/internal/observability"
)

type telemetry struct {
	tracer     observability.TraceCtx
	logger     observability.Logger
	counters   map[string]observability.Counter
	histograms map[string]observability.Histogram
}

// New bundles the tracer, logger, and the metric instruments registered in
// main. Counter and Histogram look instruments up by the shared metric-name
// constants and return nil for names never registered, so use sites
// nil-guard and an unregistered metric degrades to no recording.
func New(
	tracer observability.TraceCtx,
	logger observability.Logger,
	counters map[string]observability.Counter,
	histograms map[string]observability.Histogram,
) observability.Telemetry {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	t := &telemetry{
		tracer:     tracer,
		logger:     logger,
		counters:   make(map[string]observability.Counter, len(counters)),
		histograms: make(map[string]observability.Histogram, len(histograms)),
	}
	for name, c := range counters {
		if c != nil {
			t.counters[name] = c
		}
	}
	for name, h := range histograms {
		if h != nil {
			t.histograms[name] = h
		}
	}
	return t
}

func (t *telemetry) Tracer() observability.TraceCtx { return t.tracer }

func (t *telemetry) Logger() observability.Logger { return t.logger }

func (t *telemetry) Counter(name string) observability.Counter {
	return t.counters[name]
}

func (t *telemetry) Histogram(name string) observability.Histogram {
	return t.histograms[name]
}
