package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/logger"
)

// ResilientPublisher wraps a Bus so a failing subscriber does not fail the
// caller. Failed events are retried in the background with exponential
// backoff and written to a dead-letter file once retries run out.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// Publish never returns an error; failures are handled asynchronously
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry attempts delivery once inline and retries in the background on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"max_retries", p.maxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, attempt)):
		case <-p.shutdown:
			p.writeDeadLetter(ctx, event, attempt-1, lastErr)
			return
		}

		if lastErr = p.inner.Publish(ctx, event); lastErr == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		log.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", p.maxRetries)
	p.writeDeadLetter(ctx, event, p.maxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(ctx context.Context, event Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(ctx, event, attempts, lastErr); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-lettering their events, and closes the file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
	return p.deadLetter.Close()
}
