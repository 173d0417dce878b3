package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a deterministic Scheduler whose clock only moves on Advance
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualEntry
}

type manualEntry struct {
	seq       int
	due       time.Time
	name      string
	effect    Effect
	cancelled bool
	fired     bool
}

type manualHandle struct {
	entry *manualEntry
	s     *ManualScheduler
}

func (h manualHandle) Cancel() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.entry.cancelled || h.entry.fired {
		return false
	}
	h.entry.cancelled = true
	return true
}

// NewManual creates a manual scheduler starting at start
func NewManual(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the simulated time
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Schedule queues effect to run once Advance moves past now+delay
func (s *ManualScheduler) Schedule(delay time.Duration, name string, effect Effect) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry := &manualEntry{seq: s.seq, due: s.now.Add(delay), name: name, effect: effect}
	s.pending = append(s.pending, entry)
	return manualHandle{entry: entry, s: s}
}

// Advance moves the clock forward by d and runs every due effect in due order
func (s *ManualScheduler) Advance(ctx context.Context, d time.Duration) int {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due, rest []*manualEntry
	for _, entry := range s.pending {
		switch {
		case entry.cancelled:
		case !entry.due.After(s.now):
			entry.fired = true
			due = append(due, entry)
		default:
			rest = append(rest, entry)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, entry := range due {
		entry.effect(ctx)
	}
	return len(due)
}

// Pending returns the number of effects not yet fired or cancelled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, entry := range s.pending {
		if !entry.cancelled {
			n++
		}
	}
	return n
}
