package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/logger"
)

type memoryBackend struct {
	mu       sync.Mutex
	config   Config
	lastUsed map[string]time.Time
}

// NewMemoryService creates a cooldown service that keeps timestamps in process memory
func NewMemoryService(config Config) Service {
	return &memoryBackend{
		config:   config,
		lastUsed: make(map[string]time.Time),
	}
}

func memoryKey(identity, action string) string {
	return identity + HashSeparator + action
}

func (b *memoryBackend) CheckCooldown(_ context.Context, identity, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	onCooldown, remaining := b.check(identity, action)
	return onCooldown, remaining, nil
}

func (b *memoryBackend) check(identity, action string) (bool, time.Duration) {
	last, ok := b.lastUsed[memoryKey(identity, action)]
	if !ok {
		return false, 0
	}
	return remainingCooldown(&last, b.config.now(), b.config.GetCooldownDuration(action))
}

// EnforceCooldown holds the backend lock across fn so two callers can never
// both pass the check for the same account and action.
func (b *memoryBackend) EnforceCooldown(ctx context.Context, identity, action string, fn func(ctx context.Context) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.config.DevMode {
		if onCooldown, remaining := b.check(identity, action); onCooldown {
			return ErrOnCooldown{Action: action, Remaining: remaining}
		}
	} else {
		logger.FromContext(ctx).Debug(LogMsgDevModeBypass, "action", action, "identity", identity)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	b.lastUsed[memoryKey(identity, action)] = b.config.now()
	return nil
}

func (b *memoryBackend) ResetCooldown(_ context.Context, identity, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.lastUsed, memoryKey(identity, action))
	return nil
}

func (b *memoryBackend) GetLastUsed(_ context.Context, identity, action string) (*time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	last, ok := b.lastUsed[memoryKey(identity, action)]
	if !ok {
		return nil, nil
	}
	return &last, nil
}
