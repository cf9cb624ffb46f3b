package audit

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	domain "github.com/leafcart/storefront/internal/domain/activity"
	"github.com/leafcart/storefront/internal/observability"
	"github.com/leafcart/storefront/internal/observability/logctx"
)

const (
	componentAudit = "audit_pipeline"
	appendTimeout  = 5 * time.Second
)

// Pipeline buffers activity entries and appends them to the audit trail from
// a background goroutine. It is not durable: entries still queued at
// shutdown are flushed best-effort during Stop, and an append failure is
// logged and counted but never surfaced to the producing workflow.
type Pipeline struct {
	recorder  domain.Recorder
	queue     chan domain.Entry
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	log       observability.Logger

	// Supplied via DI; do not instantiate inside methods.
	failCounter observability.Counter // activity_append_failed_total{reason}
	okCounter   observability.Counter // activity_appended_total
}

func NewPipeline(recorder domain.Recorder, logger observability.Logger, tel observability.Telemetry) *Pipeline {
	if logger == nil {
		logger = observability.NopLogger()
	}
	var failCounter, okCounter observability.Counter
	if tel != nil {
		failCounter = tel.Counter(observability.MActivityAppendFailed)
		okCounter = tel.Counter(observability.MActivityAppendedTotal)
	}
	return &Pipeline{
		recorder:    recorder,
		queue:       make(chan domain.Entry, 1024), // buffer for backpressure
		done:        make(chan struct{}),
		log:         logger.With(observability.F("component", componentAudit)),
		failCounter: failCounter,
		okCounter:   okCounter,
	}
}

func (p *Pipeline) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		bg, cancel := context.WithCancel(context.WithoutCancel(ctx))
		p.cancel = cancel
		go p.drainLoop(bg)
		logctx.FromOr(ctx, p.log).Info("audit_pipeline_started")
	})
}

// Stop closes the queue and waits for queued entries to be appended.
func (p *Pipeline) Stop(ctx context.Context) {
	p.stopOnce.Do(func() {
		close(p.queue)
		select {
		case <-p.done:
		case <-ctx.Done():
		}
		if p.cancel != nil {
			p.cancel()
		}
		logctx.FromOr(ctx, p.log).Info("audit_pipeline_stopped")
	})
}

// Enqueue hands an entry to the pipeline. It never blocks the caller: when
// the buffer is full the entry is dropped and counted as a failure.
func (p *Pipeline) Enqueue(ctx context.Context, entry domain.Entry) {
	select {
	case p.queue <- entry:
		logctx.FromOr(ctx, p.log).Debug("activity_enqueued",
			observability.F("activity", entry.Activity),
		)
	default:
		logctx.FromOr(ctx, p.log).Warn("activity_queue_full",
			observability.F("activity", entry.Activity),
		)
		if p.failCounter != nil {
			p.failCounter.Add(1, observability.L("reason", "queue_full"))
		}
	}
}

func (p *Pipeline) drainLoop(ctx context.Context) {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("audit_pipeline_panic",
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
		}
	}()

	for entry := range p.queue {
		p.append(ctx, entry)
	}
}

func (p *Pipeline) append(ctx context.Context, entry domain.Entry) {
	appendCtx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := p.recorder.Append(appendCtx, entry); err != nil {
		p.log.Warn("activity_append_failed",
			observability.F("user_id", entry.UserID),
			observability.F("activity", entry.Activity),
			observability.F("error", err.Error()),
		)
		if p.failCounter != nil {
			p.failCounter.Add(1, observability.L("reason", "store_error"))
		}
		return
	}
	if p.okCounter != nil {
		p.okCounter.Add(1)
	}
}
