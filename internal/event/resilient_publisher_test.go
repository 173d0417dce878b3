package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, evt Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, evt)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), New(ClickResolved, nil)))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
}

func TestResilientPublisher_RetrySucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt < 3 }}

	rp, err := NewResilientPublisher(bus, 5, time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), New(CasinoResolved, nil))

	require.Eventually(t, func() bool { return bus.CallCount() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "no dead letters expected")
}

func TestResilientPublisher_ExhaustedWritesDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 2, time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewForAccount(CaseRevealed, "steve@example.com", "prize"))
	require.Eventually(t, func() bool { return bus.CallCount() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	var entry DeadLetterEntry
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, CaseRevealed, entry.Event.Type)
	assert.Equal(t, "steve@example.com", entry.Identity)
	assert.Equal(t, 2, entry.Attempts)
	assert.Equal(t, "mock publish error", entry.LastError)
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), New(ListingSold, nil))
	require.NoError(t, rp.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), string(ListingSold))
}
