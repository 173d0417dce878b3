package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// Manager holds the session state of every active player. Entries expire
// after the token TTL, and an expired or unknown identity is logged out.
type Manager struct {
	mu     sync.Mutex
	states *expirable.LRU[string, domain.SessionState]
}

// NewManager creates a session manager holding at most size sessions
func NewManager(size int, ttl time.Duration) *Manager {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{
		states: expirable.NewLRU[string, domain.SessionState](size, nil, ttl),
	}
}

// State returns the current state for identity
func (m *Manager) State(identity string) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked(identity)
}

func (m *Manager) stateLocked(identity string) domain.SessionState {
	if state, ok := m.states.Get(identity); ok {
		return state
	}
	return domain.SessionLoggedOut
}

// Apply moves identity through the state machine and returns the new state.
// A rejected trigger leaves the stored state untouched.
func (m *Manager) Apply(ctx context.Context, identity string, trigger domain.SessionTrigger) (domain.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logger.FromContext(ctx)
	current := m.stateLocked(identity)
	next, err := Transition(current, trigger)
	if err != nil {
		log.Warn(LogMsgTransitionRejected, "identity", identity, "state", current, "trigger", trigger)
		return current, err
	}

	if next == domain.SessionLoggedOut {
		m.states.Remove(identity)
	} else {
		m.states.Add(identity, next)
	}
	log.Debug(LogMsgTransition, "identity", identity, "from", current, "to", next, "trigger", trigger)
	return next, nil
}

// Require returns domain.ErrInvalidSessionTransition unless identity is in want
func (m *Manager) Require(identity string, want domain.SessionState) error {
	if have := m.State(identity); have != want {
		return fmt.Errorf(ErrMsgRequireStateFmt, domain.ErrInvalidSessionTransition, want, have)
	}
	return nil
}
