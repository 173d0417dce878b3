// Package eventlog keeps an audit trail of economy events for admins.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// auditedTypes are recorded. Clicks are left to the metrics counters.
var auditedTypes = []event.Type{
	event.AccountRegistered,
	event.ItemBought,
	event.InventorySold,
	event.CasinoWagered,
	event.CasinoResolved,
	event.CasePackBought,
	event.CaseOpened,
	event.CaseRevealed,
	event.ListingCreated,
	event.ListingSold,
	event.AdminGrant,
}

// Service records and queries the event log
type Service interface {
	// Subscribe registers the recorder on every audited event type
	Subscribe(ctx context.Context, bus event.Bus)

	// Query returns matching entries, newest first
	Query(ctx context.Context, filter Filter) ([]Entry, error)

	// Cleanup removes entries older than retention
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event log service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(ctx context.Context, bus event.Bus) {
	for _, t := range auditedTypes {
		bus.Subscribe(t, s.record)
	}
	logger.FromContext(ctx).Info(LogMsgSubscribed, "types", len(auditedTypes))
}

// record never fails the publish: a retry would replay the event to every
// other subscriber
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.EncodePayload(evt.Payload)
	if err != nil {
		log.Error(LogMsgFailedToRecord, "type", evt.Type, "error", fmt.Errorf(ErrMsgEncodePayload, evt.Type, err))
		return nil
	}

	identity, _ := evt.GetMetadataValue(event.MetadataKeyIdentity).(string)
	entry := &Entry{
		EventType: string(evt.Type),
		Identity:  identity,
		Payload:   payload,
		CreatedAt: s.now(),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		log.Error(LogMsgFailedToRecord, "type", evt.Type, "error", fmt.Errorf(ErrMsgAppendFailed, evt.Type, err))
		return nil
	}

	log.Debug(LogMsgEventRecorded, "type", evt.Type, "identity", identity, "id", entry.ID)
	return nil
}

func (s *service) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultQueryLimit
	case filter.Limit > MaxQueryLimit:
		filter.Limit = MaxQueryLimit
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return entries, nil
}

func (s *service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	deleted, err := s.repo.DeleteBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCleanupFailed, err)
	}
	return deleted, nil
}
