package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MineClicker_Go/internal/account"
	"github.com/osse101/MineClicker_Go/internal/admin"
	"github.com/osse101/MineClicker_Go/internal/casino"
	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/config"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/economy"
	"github.com/osse101/MineClicker_Go/internal/eventlog"
	"github.com/osse101/MineClicker_Go/internal/handler"
	"github.com/osse101/MineClicker_Go/internal/lootbox"
	"github.com/osse101/MineClicker_Go/internal/market"
	"github.com/osse101/MineClicker_Go/internal/metrics"
	"github.com/osse101/MineClicker_Go/internal/scheduler"
	"github.com/osse101/MineClicker_Go/internal/server"
	"github.com/osse101/MineClicker_Go/internal/session"
	"github.com/osse101/MineClicker_Go/internal/sse"
	"github.com/osse101/MineClicker_Go/internal/utils"
	"github.com/osse101/MineClicker_Go/internal/worker"
)

// App is the fully wired game server
type App struct {
	Server     *server.Server
	components ShutdownComponents
}

// Build wires storage, events, background work, services, and the HTTP
// server from cfg. Background workers are running when it returns.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	storage, err := InitializeStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return nil, err
	}

	hub := sse.NewHub()
	hub.Start()
	RegisterEventHandlers(ctx, bus, hub)

	events := eventlog.NewService(storage.EventLog)
	events.Subscribe(ctx, bus)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.MetricsSnapshotInterval > 0 {
		sched.Every(cfg.MetricsSnapshotInterval, metrics.NewSnapshotJob(storage.Store, sched))
	}
	if cfg.EventLogCleanupInterval > 0 {
		sched.Every(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(events, cfg.EventLogRetention))
	}
	slog.Info(LogMsgBackgroundStarted,
		"workers", cfg.WorkerCount,
		"snapshot_interval", cfg.MetricsSnapshotInterval,
		"event_log_cleanup_interval", cfg.EventLogCleanupInterval)

	components := ShutdownComponents{
		Scheduler:          sched,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
		Storage:            storage,
	}
	fail := func(err error) (*App, error) {
		GracefulShutdown(ctx, components)
		return nil, err
	}

	tokens, err := session.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", ErrMsgFailedCreateIssuer, err))
	}
	sessions := session.NewManager(0, tokens.TTL())

	if err := catalog.SetLocale(cfg.Locale); err != nil {
		return fail(fmt.Errorf("%s %q: %w", ErrMsgInvalidLocale, cfg.Locale, err))
	}

	payout, err := economy.PolicyByName(cfg.ClickPayoutPolicy, utils.RandomInt)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", ErrMsgUnknownPolicy, err))
	}

	timings := CooldownConfig(cfg)
	casinoDelay := timings.GetCooldownDuration(domain.ActionCasino)
	caseDelay := timings.GetCooldownDuration(domain.ActionOpenCase)

	locks := concurrency.NewLockManager()
	store := storage.Store

	deps := server.Deps{
		Store:    store,
		Tokens:   tokens,
		Sessions: sessions,
		Hub:      hub,
		Accounts: account.NewService(store, locks, sessions, tokens, publisher),
		Economy:  economy.NewService(store, storage.Cooldowns, locks, publisher, payout),
		Casino:   casino.NewService(store, storage.Cooldowns, locks, sched, publisher, casinoDelay),
		Lootbox:  lootbox.NewService(store, storage.Cooldowns, locks, sched, publisher, caseDelay),
		Market:   market.NewService(store, store, locks, publisher),
		Admin: admin.NewService(admin.Credentials{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}, store, locks, tokens, publisher),
		EventLog: events,
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		TrustedProxies: cfg.TrustedProxies,
		Detector:       server.DetectorConfig{RequestLimit: cfg.RateLimit},
		Timings: handler.NewTimings(
			timings.GetCooldownDuration(domain.ActionClick),
			casinoDelay,
			caseDelay,
		),
	}, deps)

	components.Server = srv
	return &App{Server: srv, components: components}, nil
}

// Shutdown stops the app in dependency order
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, a.components)
}
