package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineClicker_Go/internal/config"
	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/database"
	"github.com/osse101/MineClicker_Go/internal/database/memory"
	"github.com/osse101/MineClicker_Go/internal/database/postgres"
	"github.com/osse101/MineClicker_Go/internal/database/schema"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/eventlog"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

// Storage holds the persistence backends selected by configuration.
// Pool is nil for the in-memory backend.
type Storage struct {
	Store     repository.Store
	Cooldowns cooldown.Service
	EventLog  eventlog.Repository
	Pool      *pgxpool.Pool
}

// Close releases the database pool if one was opened
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		slog.Info(LogMsgDatabaseClosed)
	}
}

// InitializeStorage opens the configured backend. The Postgres path connects,
// migrates, and keeps busy-gates in the database so they survive restarts.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	cooldownCfg := CooldownConfig(cfg)

	if !cfg.UsesPostgres() {
		slog.Info(LogMsgStorageMemory)
		return &Storage{
			Store:     memory.NewStore(),
			Cooldowns: cooldown.NewMemoryService(cooldownCfg),
			EventLog:  memory.NewEventLog(),
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if err := schema.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)
	return &Storage{
		Store:     postgres.NewStore(pool, cfg.AccountCacheSize, cfg.AccountCacheTTL),
		Cooldowns: cooldown.NewPostgresService(pool, cooldownCfg),
		EventLog:  postgres.NewEventLog(pool),
		Pool:      pool,
	}, nil
}

// CooldownConfig maps configured timings onto busy-gate durations. A zero
// timing keeps the built-in default.
func CooldownConfig(cfg *config.Config) cooldown.Config {
	return cooldown.Config{
		DevMode: cfg.DevMode,
		Cooldowns: map[string]time.Duration{
			domain.ActionClick:    orDefault(cfg.ClickCooldown, domain.ClickCooldown),
			domain.ActionCasino:   orDefault(cfg.CasinoRevealDelay, domain.CasinoRevealDelay),
			domain.ActionOpenCase: orDefault(cfg.CaseRevealDelay, domain.CaseRevealDelay),
		},
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
