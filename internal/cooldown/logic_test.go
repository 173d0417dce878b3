package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashAccountAction(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		action   string
	}{
		{"normal", "a@example.com", "click"},
		{"empty", "", ""},
		{"symbols", "a+b!@#", "action$%^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := hashAccountAction(tt.identity, tt.action)
			h2 := hashAccountAction(tt.identity, tt.action)

			assert.Equal(t, h1, h2, "hash should be deterministic")
			assert.GreaterOrEqual(t, h1, int64(0), "hash should be positive")
		})
	}

	t.Run("collisions", func(t *testing.T) {
		h1 := hashAccountAction("a@example.com", "click")
		assert.NotEqual(t, h1, hashAccountAction("a@example.com", "casino"))
		assert.NotEqual(t, h1, hashAccountAction("b@example.com", "click"))
	})
}

func TestRemainingCooldown(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	duration := time.Second
	recent := now.Add(-300 * time.Millisecond)
	old := now.Add(-2 * time.Second)
	exact := now.Add(-time.Second)

	tests := []struct {
		name           string
		lastUsed       *time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{"never used", nil, false, 0},
		{"recent", &recent, true, 700 * time.Millisecond},
		{"expired", &old, false, 0},
		{"exact boundary", &exact, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onCooldown, remaining := remainingCooldown(tt.lastUsed, now, duration)
			assert.Equal(t, tt.wantOnCooldown, onCooldown)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}
