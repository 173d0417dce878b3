package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/worker"
)

// TimerScheduler fires effects with time.AfterFunc and hands them to the worker pool
type TimerScheduler struct {
	workerPool *worker.Pool

	mu      sync.Mutex
	pending map[uuid.UUID]*timerEntry
	stopped bool

	quit chan struct{}
	wg   sync.WaitGroup
}

type timerEntry struct {
	name   string
	timer  *time.Timer
	effect Effect
}

type timerHandle struct {
	id uuid.UUID
	s  *TimerScheduler
}

func (h timerHandle) Cancel() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	entry, ok := h.s.pending[h.id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(h.s.pending, h.id)
	return true
}

// New creates a new scheduler backed by pool
func New(pool *worker.Pool) *TimerScheduler {
	return &TimerScheduler{
		workerPool: pool,
		pending:    make(map[uuid.UUID]*timerEntry),
		quit:       make(chan struct{}),
	}
}

// Now returns the wall clock
func (s *TimerScheduler) Now() time.Time {
	return time.Now()
}

// Schedule runs effect after delay. After Stop, effects run immediately.
func (s *TimerScheduler) Schedule(delay time.Duration, name string, effect Effect) Handle {
	id := uuid.New()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.enqueue(name, effect)
		return timerHandle{id: id, s: s}
	}

	entry := &timerEntry{name: name, effect: effect}
	entry.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, ok := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if ok {
			s.enqueue(name, effect)
		}
	})
	s.pending[id] = entry
	s.mu.Unlock()

	return timerHandle{id: id, s: s}
}

func (s *TimerScheduler) enqueue(name string, effect Effect) {
	s.workerPool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
		logger.FromContext(ctx).Debug(LogMsgEffectFired, "effect", name)
		effect(ctx)
		return nil
	}))
}

// Every registers a job to run at a fixed interval until Stop
func (s *TimerScheduler) Every(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Pending returns the number of effects waiting on their timer
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop halts interval jobs and fires every pending effect right away, so a
// debited wager or case is always settled before the worker pool drains.
func (s *TimerScheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	flushed := make([]*timerEntry, 0, len(s.pending))
	for id, entry := range s.pending {
		// An entry still in pending has not been enqueued by its timer yet
		entry.timer.Stop()
		flushed = append(flushed, entry)
		delete(s.pending, id)
	}
	s.mu.Unlock()

	close(s.quit)
	s.wg.Wait()

	if len(flushed) > 0 {
		logger.FromContext(ctx).Info(LogMsgFlushingEffects, "count", len(flushed))
	}
	for _, entry := range flushed {
		s.enqueue(entry.name, entry.effect)
	}
}
