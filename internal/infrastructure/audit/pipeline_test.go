package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/leafcart/storefront/internal/domain/activity"
	"github.com/leafcart/storefront/internal/infrastructure/memory"
)

type failingRecorder struct {
	mu       sync.Mutex
	attempts int
}

func (r *failingRecorder) Append(_ context.Context, _ domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
	return errors.New("store unavailable")
}

func (r *failingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func TestPipeline_AppendsEnqueuedEntries(t *testing.T) {
	recorder := memory.NewActivityRepository()
	pipeline := NewPipeline(recorder, nil, nil)
	pipeline.Start(context.Background())

	pipeline.Enqueue(context.Background(), domain.NewEntry("e1", "u1", "Order placed"))
	pipeline.Enqueue(context.Background(), domain.NewEntry("e2", "", "Added to cart"))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pipeline.Stop(stopCtx)

	entries := recorder.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, domain.AnonymousUser, entries[1].UserID)
}

func TestPipeline_StoreFailureDoesNotBlockProducer(t *testing.T) {
	recorder := &failingRecorder{}
	pipeline := NewPipeline(recorder, nil, nil)
	pipeline.Start(context.Background())

	// Enqueue returns immediately regardless of store health.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			pipeline.Enqueue(context.Background(), domain.NewEntry("e", "u1", "Order placed"))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a failing recorder")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pipeline.Stop(stopCtx)

	assert.Equal(t, 10, recorder.count())
}

func TestPipeline_StopFlushesQueue(t *testing.T) {
	recorder := memory.NewActivityRepository()
	pipeline := NewPipeline(recorder, nil, nil)
	pipeline.Start(context.Background())

	for i := 0; i < 50; i++ {
		pipeline.Enqueue(context.Background(), domain.NewEntry("e", "u1", "Order placed"))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pipeline.Stop(stopCtx)

	assert.Len(t, recorder.Entries(), 50)
}

func TestPipeline_StopIsIdempotent(t *testing.T) {
	pipeline := NewPipeline(memory.NewActivityRepository(), nil, nil)
	pipeline.Start(context.Background())

	ctx := context.Background()
	pipeline.Stop(ctx)
	pipeline.Stop(ctx)
}
