package concurrency

import (
	"sync"
	"time"
)

// MinPendingRetry is the smallest wait reported for a key whose work is
// overdue but has not finished yet
const MinPendingRetry = 100 * time.Millisecond

// PendingGate marks keys that have deferred work outstanding. A key stays
// held from Hold until Release, however late the work runs.
type PendingGate struct {
	mu      sync.Mutex
	pending map[string]time.Time
}

// NewPendingGate creates an empty gate
func NewPendingGate() *PendingGate {
	return &PendingGate{pending: make(map[string]time.Time)}
}

// Hold marks key as pending until Release. due is when the work is expected
// to finish and only feeds Remaining.
func (g *PendingGate) Hold(key string, due time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending[key] = due
}

// Release clears key
func (g *PendingGate) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key)
}

// Remaining reports whether key is held and how long until its work is due,
// never less than MinPendingRetry
func (g *PendingGate) Remaining(key string, now time.Time) (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	due, ok := g.pending[key]
	if !ok {
		return 0, false
	}
	if left := due.Sub(now); left > MinPendingRetry {
		return left, true
	}
	return MinPendingRetry, true
}
