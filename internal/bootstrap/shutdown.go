package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/scheduler"
	"github.com/osse101/MineClicker_Go/internal/server"
	"github.com/osse101/MineClicker_Go/internal/sse"
	"github.com/osse101/MineClicker_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.TimerScheduler
	WorkerPool         *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (flush pending reveals into the worker pool)
// 3. Worker pool (finish queued effects)
// 4. Event publisher and SSE hub (flush events raised by those effects)
// 5. Storage
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler, "pending", c.Scheduler.Pending())
		c.Scheduler.Stop(ctx)
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
