package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/circulation/pkg/app"
	"github.com/ghuser/circulation/pkg/cache"
	"github.com/ghuser/circulation/pkg/config"
	"github.com/ghuser/circulation/pkg/database"
	"github.com/ghuser/circulation/pkg/events"
	"github.com/ghuser/circulation/pkg/logger"
	"github.com/ghuser/circulation/pkg/telemetry"
	pkgworkflows "github.com/ghuser/circulation/pkg/workflows"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
	lendingworkflows "github.com/ghuser/circulation/services/lending/application/workflows"
	lendingevents "github.com/ghuser/circulation/services/lending/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	svcs := appsvcs.New(appConfig)

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	if cfg.TemporalHostPort != "" {
		temporalClient, err := pkgworkflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		if err := startSweepWorker(sweepCtx, temporalClient, svcs, log); err != nil {
			log.Error("failed to start sweep worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	} else {
		// No Temporal server configured; fall back to an in-process ticker.
		go runSweeper(sweepCtx, appConfig, svcs)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelSweep()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more events are published.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	invalidator := handleAvailabilityChanged(a)
	topics := []string{
		lendingevents.TopicLoanCreated,
		lendingevents.TopicLoanReturned,
	}

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, invalidator)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		topic := topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// availabilityEvent is the subset of loan event payloads the cache
// invalidator needs.
type availabilityEvent struct {
	ItemID string `json:"item_id"`
}

// handleAvailabilityChanged returns a handler for loan open/close events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Drops the item's cached availability so the next read repopulates it from
// Postgres with the post-event counter.
func handleAvailabilityChanged(a *app.Application) func(context.Context, *message.Message) error {
	availability := cache.NewAvailabilityCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt availabilityEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		itemID, err := uuid.Parse(evt.ItemID)
		if err != nil {
			// Malformed event; retrying will not help.
			a.Logger.WarnContext(ctx, "skipping event with bad item_id", "item_id", evt.ItemID, "error", err)
			return nil
		}

		if err := availability.Delete(ctx, itemID); err != nil {
			// Invalidation is best-effort; the entry expires on its TTL anyway.
			a.Logger.WarnContext(ctx, "availability cache invalidation failed",
				"item_id", itemID, "error", err)
		}
		return nil
	}
}

// startSweepWorker runs a Temporal worker for the sweep task queue and
// ensures the daily cron workflow is scheduled.
func startSweepWorker(ctx context.Context, tc *pkgworkflows.TemporalClient, svcs *appsvcs.Services, log logger.Logger) error {
	w := worker.New(tc.Client, lendingworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(lendingworkflows.OverdueSweepWorkflow)
	w.RegisterActivity(lendingworkflows.NewOverdueActivities(svcs).SweepOverdueLoans)

	if err := w.Start(); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	// Idempotent: with a fixed workflow ID and reject-duplicate policy this
	// is a no-op when the cron schedule is already running.
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           lendingworkflows.OverdueSweepWorkflowID,
		TaskQueue:    lendingworkflows.TaskQueue,
		CronSchedule: lendingworkflows.OverdueSweepCron,
	}, lendingworkflows.OverdueSweepWorkflow)
	if err != nil {
		log.Warn("overdue sweep cron schedule not started", "error", err)
	} else {
		log.Info("overdue sweep cron scheduled", "cron", lendingworkflows.OverdueSweepCron)
	}
	return nil
}

// runSweeper runs the overdue sweep on a fixed interval until ctx is
// cancelled. Used when no Temporal server is configured.
func runSweeper(ctx context.Context, a *app.Application, svcs *appsvcs.Services) {
	interval, err := time.ParseDuration(a.Cfg.SweepInterval)
	if err != nil || interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.Logger.Info("in-process overdue sweeper started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("overdue sweeper shutting down")
			return
		case <-ticker.C:
			if _, err := svcs.Engine.RunOverdueSweep(ctx); err != nil {
				a.Logger.ErrorContext(ctx, "overdue sweep failed", "error", err)
			}
		}
	}
}
