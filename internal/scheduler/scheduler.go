package scheduler

import (
	"context"
	"time"
)

// Effect is a deferred state change. It runs once, on a worker goroutine for
// the real scheduler and on the caller's goroutine for the manual one.
type Effect func(ctx context.Context)

// Handle lets the owner of a scheduled effect cancel it before it fires
type Handle interface {
	// Cancel prevents the effect from running. It reports false when the
	// effect already ran or was already cancelled.
	Cancel() bool
}

// Scheduler runs effects after a delay and exposes the clock it measures with
type Scheduler interface {
	Schedule(delay time.Duration, name string, effect Effect) Handle
	Now() time.Time
}
