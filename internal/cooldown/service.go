package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Service manages per-account action cooldowns and busy-gates
type Service interface {
	// CheckCooldown checks if an account's action is on cooldown
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, identity, action string) (bool, time.Duration, error)

	// EnforceCooldown atomically checks cooldown and executes fn if allowed.
	// The cooldown only starts when fn succeeds. fn must do its writes with
	// the context it is handed so they commit together with the cooldown.
	EnforceCooldown(ctx context.Context, identity, action string, fn func(ctx context.Context) error) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, identity, action string) error

	// GetLastUsed returns when action was last performed
	GetLastUsed(ctx context.Context, identity, action string) (*time.Time, error)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	if e.Remaining < time.Second {
		return fmt.Sprintf(ErrFmtCooldownMillis, e.Action, e.Remaining.Milliseconds())
	}

	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute
	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// remainingCooldown reports whether lastUsed is still inside duration at now
func remainingCooldown(lastUsed *time.Time, now time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}
	return false, 0
}
