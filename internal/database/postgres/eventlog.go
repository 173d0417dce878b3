package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineClicker_Go/internal/eventlog"
)

var _ eventlog.Repository = (*EventLog)(nil)

// EventLog stores the event log in the event_log table
type EventLog struct {
	db *pgxpool.Pool
}

// NewEventLog creates a new PostgreSQL event log repository
func NewEventLog(db *pgxpool.Pool) *EventLog {
	return &EventLog{db: db}
}

func (r *EventLog) Append(ctx context.Context, entry *eventlog.Entry) error {
	var identity *string
	if entry.Identity != "" {
		identity = &entry.Identity
	}

	err := r.db.QueryRow(ctx, sqlInsertEvent, entry.EventType, identity, []byte(entry.Payload), entry.CreatedAt).
		Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertEventFailed, err)
	}
	return nil
}

func (r *EventLog) List(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	var query strings.Builder
	query.WriteString(sqlSelectEvents)

	args := []interface{}{}
	argNum := 1

	if filter.Identity != "" {
		fmt.Fprintf(&query, " AND identity = $%d", argNum)
		args = append(args, filter.Identity)
		argNum++
	}
	if filter.EventType != "" {
		fmt.Fprintf(&query, " AND event_type = $%d", argNum)
		args = append(args, filter.EventType)
		argNum++
	}
	if !filter.Since.IsZero() {
		fmt.Fprintf(&query, " AND created_at >= $%d", argNum)
		args = append(args, filter.Since)
		argNum++
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&query, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListEventsFailed, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventLog) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlDeleteEventsBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDeleteEventsFailed, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Entry, error) {
	var entries []eventlog.Entry
	for rows.Next() {
		var (
			e        eventlog.Entry
			identity *string
			payload  []byte
		)
		if err := rows.Scan(&e.ID, &e.EventType, &identity, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgListEventsFailed, err)
		}
		if identity != nil {
			e.Identity = *identity
		}
		e.Payload = payload
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListEventsFailed, err)
	}
	return entries, nil
}
