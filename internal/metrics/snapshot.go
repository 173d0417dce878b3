package metrics

import (
	"context"

	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

// PendingCounter reports how many deferred effects are waiting
type PendingCounter interface {
	Pending() int
}

// SnapshotJob refreshes the gauges that describe stored state. It runs on the
// worker pool at a fixed interval.
type SnapshotJob struct {
	store   repository.Store
	pending PendingCounter
}

// NewSnapshotJob creates a snapshot job. pending may be nil.
func NewSnapshotJob(store repository.Store, pending PendingCounter) *SnapshotJob {
	return &SnapshotJob{store: store, pending: pending}
}

// Process implements worker.Job
func (j *SnapshotJob) Process(ctx context.Context) error {
	accounts, err := j.store.ListAccounts(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSnapshotFailed, "error", err)
		return err
	}
	listings, err := j.store.ListListings(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSnapshotFailed, "error", err)
		return err
	}

	Accounts.Set(float64(len(accounts)))
	OpenListings.Set(float64(len(listings)))
	if j.pending != nil {
		PendingEffects.Set(float64(j.pending.Pending()))
	}
	return nil
}
