package eventlog

import "time"

// Query and retention defaults
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
	DefaultRetention  = 30 * 24 * time.Hour
)

// Error messages
const (
	ErrMsgEncodePayload = "failed to encode %s payload: %w"
	ErrMsgAppendFailed  = "failed to append %s entry: %w"
	ErrMsgQueryFailed   = "failed to query event log: %w"
	ErrMsgCleanupFailed = "failed to clean up event log: %w"
)

// Log messages - service events
const (
	LogMsgSubscribed     = "Event log subscribed"
	LogMsgFailedToRecord = "Failed to record event"
	LogMsgEventRecorded  = "Event recorded"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
