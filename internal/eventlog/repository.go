package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one recorded gameplay event
type Entry struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	Identity  string          `json:"identity,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows an event log query. Empty fields match everything.
type Filter struct {
	Identity  string
	EventType string
	Since     time.Time
	Limit     int
}

// Repository stores the event log
type Repository interface {
	// Append stores entry and fills in its ID
	Append(ctx context.Context, entry *Entry) error

	// List returns matching entries, newest first
	List(ctx context.Context, filter Filter) ([]Entry, error)

	// DeleteBefore removes entries created before cutoff
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
