package memory

import (
	"context"
	"sync"

	domain "github.com/leafcart/storefront/internal/domain/activity"
)

type ActivityRepository struct {
	mu      sync.RWMutex
	entries []domain.Entry
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Append(ctx context.Context, entry domain.Entry) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

// Entries returns a snapshot of the recorded audit trail. Test helper.
func (r *ActivityRepository) Entries() []domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
