package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/testing/leaktest"
	"github.com/osse101/MineClicker_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestTimerScheduler_Every(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop(context.Background())

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Every(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestTimerScheduler_ScheduleFiresOnce(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop(context.Background())

	done := make(chan struct{}, 1)
	sched.Schedule(5*time.Millisecond, "test", func(ctx context.Context) {
		done <- struct{}{}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("effect never fired")
	}
	assert.Equal(t, 0, sched.Pending())
}

func TestTimerScheduler_Cancel(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop(context.Background())

	var fired int32
	h := sched.Schedule(time.Hour, "never", func(ctx context.Context) {
		atomic.AddInt32(&fired, 1)
	})

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestTimerScheduler_StopFlushesPending(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()

	sched := New(pool)

	var fired int32
	sched.Schedule(time.Hour, "settle", func(ctx context.Context) {
		atomic.AddInt32(&fired, 1)
	})

	sched.Stop(context.Background())
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestManualScheduler_Advance(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sched := NewManual(start)

	var order []string
	sched.Schedule(2*time.Second, "second", func(ctx context.Context) { order = append(order, "second") })
	sched.Schedule(time.Second, "first", func(ctx context.Context) { order = append(order, "first") })
	cancelled := sched.Schedule(time.Second, "cancelled", func(ctx context.Context) { order = append(order, "cancelled") })

	require.True(t, cancelled.Cancel())
	assert.Equal(t, 2, sched.Pending())

	// ACT & ASSERT: nothing is due before its delay elapses
	assert.Equal(t, 0, sched.Advance(ctx, 999*time.Millisecond))
	assert.Empty(t, order)

	assert.Equal(t, 1, sched.Advance(ctx, time.Millisecond))
	assert.Equal(t, []string{"first"}, order)

	assert.Equal(t, 1, sched.Advance(ctx, 5*time.Second))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, start.Add(6*time.Second), sched.Now())
	assert.Equal(t, 0, sched.Pending())
}

func TestManualScheduler_CancelAfterFire(t *testing.T) {
	sched := NewManual(time.Now())
	h := sched.Schedule(0, "now", func(ctx context.Context) {})

	sched.Advance(context.Background(), 0)
	assert.False(t, h.Cancel())
}

func TestTimerScheduler_StopReleasesGoroutines(t *testing.T) {
	leaktest.Verify(t, func() {
		pool := worker.NewPool(2, 8)
		pool.Start()
		s := New(pool)
		s.Every(time.Hour, worker.JobFunc(func(context.Context) error { return nil }))
		s.Schedule(time.Hour, "pending", func(context.Context) {})

		s.Stop(context.Background())
		pool.Stop()
	})
}
