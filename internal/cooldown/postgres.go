package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

// postgresBackend implements Service using PostgreSQL
type postgresBackend struct {
	db     *pgxpool.Pool
	config Config
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool, config Config) Service {
	return &postgresBackend{
		db:     db,
		config: config,
	}
}

// CheckCooldown checks if an account's action is on cooldown (unlocked read)
func (b *postgresBackend) CheckCooldown(ctx context.Context, identity, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.getLastUsed(ctx, b.db, identity, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := remainingCooldown(lastUsed, b.config.now(), b.config.GetCooldownDuration(action))
	return onCooldown, remaining, nil
}

// EnforceCooldown atomically checks cooldown and executes action if allowed
// Uses check-then-lock pattern for performance
func (b *postgresBackend) EnforceCooldown(ctx context.Context, identity, action string, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	// Cheap unlocked check first
	onCooldown, remaining, err := b.CheckCooldown(ctx, identity, action)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "identity", identity)
		if err := fn(ctx); err != nil {
			return err
		}
		return b.updateCooldown(ctx, b.db, identity, action, b.config.now())
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Advisory locks work even when no row exists (unlike SELECT FOR UPDATE)
	if _, err = tx.Exec(ctx, SQLAdvisoryLock, hashAccountAction(identity, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	lastUsed, err := b.getLastUsed(ctx, tx, identity, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}

	if onCooldown, remaining := remainingCooldown(lastUsed, b.config.now(), b.config.GetCooldownDuration(action)); onCooldown {
		log.Debug(LogMsgRaceConditionDetected, "action", action, "identity", identity, "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	// Account writes in fn join tx, so they commit or roll back with the
	// cooldown row on the one connection already held
	if err := fn(repository.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := b.updateCooldown(ctx, tx, identity, action, b.config.now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	// Commit releases the advisory lock
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Debug(LogMsgCooldownEnforced, "action", action, "identity", identity)
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *postgresBackend) ResetCooldown(ctx context.Context, identity, action string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, identity, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// GetLastUsed returns when action was last performed
func (b *postgresBackend) GetLastUsed(ctx context.Context, identity, action string) (*time.Time, error) {
	return b.getLastUsed(ctx, b.db, identity, action)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (b *postgresBackend) getLastUsed(ctx context.Context, q querier, identity, action string) (*time.Time, error) {
	var lastUsed time.Time

	err := q.QueryRow(ctx, SQLSelectLastUsed, identity, action).Scan(&lastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return &lastUsed, nil
}

func (b *postgresBackend) updateCooldown(ctx context.Context, q querier, identity, action string, timestamp time.Time) error {
	_, err := q.Exec(ctx, SQLUpsertCooldown, identity, action, timestamp)
	return err
}

// hashAccountAction creates a consistent int64 hash from identity + action for advisory locking
func hashAccountAction(identity, action string) int64 {
	h := sha256.Sum256([]byte(identity + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
