package activity

import (
	"context"
	"time"
)

// AnonymousUser is substituted when an event has no usable user id, so an
// append can never fail on a missing reference.
const AnonymousUser = "anonymous"

// Entry is one append-only audit record. Entries are never updated or
// deleted.
type Entry struct {
	ID       string
	UserID   string
	Activity string
	Date     time.Time
}

func NewEntry(id, userID, label string) Entry {
	if userID == "" {
		userID = AnonymousUser
	}
	return Entry{
		ID:       id,
		UserID:   userID,
		Activity: label,
		Date:     time.Now().UTC(),
	}
}

type Recorder interface {
	Append(ctx context.Context, entry Entry) error
}
