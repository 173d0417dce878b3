package event

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/logger"
)

// DeadLetterSchemaVersion is the current version of the dead-letter line format
const DeadLetterSchemaVersion = "1.1"

// DeadLetterEntry is one line of the dead-letter file. Identity is lifted out
// of the metadata so an operator can grep for an account's lost settlements.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Identity      string    `json:"identity,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends events that could not be delivered to a JSONL file
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// NewDeadLetterWriter opens (or creates) the file at path for appending
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{file: f, now: time.Now}, nil
}

// Write appends one entry for evt
func (w *DeadLetterWriter) Write(ctx context.Context, evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     w.now(),
		Event:         evt,
		Attempts:      attempts,
	}
	entry.Identity, _ = evt.GetMetadataValue(MetadataKeyIdentity).(string)
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode dead-letter entry for %s: %w", evt.Type, err)
	}

	logger.FromContext(ctx).Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type,
		"identity", entry.Identity,
		"attempts", attempts,
		"error", entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append dead-letter entry: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (w *DeadLetterWriter) Close() error {
	return w.file.Close()
}
