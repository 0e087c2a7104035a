package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/circulation/pkg/cache"
	"github.com/ghuser/circulation/pkg/config"
	"github.com/ghuser/circulation/pkg/database"
	"github.com/ghuser/circulation/pkg/events"
	"github.com/ghuser/circulation/pkg/logger"
	"github.com/ghuser/circulation/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to the route registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "loan opened", "loan_id", id)
//	app.Logger.ErrorContext(ctx, "borrow failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when TEMPORAL_HOST_PORT is unset
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
