package memory

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/eventlog"
)

var _ eventlog.Repository = (*EventLog)(nil)

// EventLog keeps event log entries in append order
type EventLog struct {
	mu      sync.RWMutex
	entries []eventlog.Entry
	nextID  int64
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Append(_ context.Context, entry *eventlog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	entry.ID = l.nextID
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *EventLog) List(_ context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []eventlog.Entry
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if filter.Identity != "" && e.Identity != filter.Identity {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if !filter.Since.IsZero() && e.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (l *EventLog) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(l.entries) - len(kept))
	l.entries = kept
	return deleted, nil
}
