package worker

import (
	"context"
	"sync"

	"github.com/osse101/MineClicker_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to Job
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	// mu orders sends against Stop: once stopped is set no job can enter
	// jobQueue
	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = DefaultWorkerCount
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			// Drain what is already queued so deferred credits are not lost
			for {
				select {
				case job := <-p.jobQueue:
					p.run(job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(job Job) {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job to the queue. It blocks while the queue is full.
// Jobs enqueued after Stop run inline on the caller's goroutine.
func (p *Pool) Enqueue(job Job) {
	if !p.send(job) {
		p.run(job)
	}
}

// send queues job and reports false once the pool is stopping
func (p *Pool) send(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// Stop stops the workers and waits for them to finish queued work
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
	})
	p.wg.Wait()

	// Jobs sent after the workers' own drain
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		default:
			return
		}
	}
}
