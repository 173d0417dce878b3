// Package leaktest checks that background components release their
// goroutines once stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettleTimeout is how long Check waits for goroutines to exit
const DefaultSettleTimeout = time.Second

// GoroutineChecker records a goroutine baseline and later waits for the count
// to fall back to it
type GoroutineChecker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		t:       t,
		before:  runtime.NumGoroutine(),
		timeout: DefaultSettleTimeout,
	}
}

// Check fails the test if more than tolerance goroutines are still running
// after the settle timeout
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before+tolerance, g.timeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, leaked, tolerance)
	}
}

// Verify runs fn and checks that it leaves no goroutines behind
func Verify(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle polls until at most target goroutines remain or timeout passes,
// returning the last count seen
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(5 * time.Millisecond)
	}
}
