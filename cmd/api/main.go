package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fashionos_backend/internal/accesscontrol"
	"fashionos_backend/internal/auth"
	"fashionos_backend/internal/crm"
	"fashionos_backend/internal/eventplanning"
	"fashionos_backend/internal/events"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/internal/http/router"
	"fashionos_backend/internal/notification"
	"fashionos_backend/internal/scoring"
	"fashionos_backend/internal/sponsors"
	"fashionos_backend/internal/vendors"
	"fashionos_backend/migrations"
	"fashionos_backend/platform/config"
	"fashionos_backend/platform/db"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, log)
	accessModule := accesscontrol.NewModule(pool, val, log)
	crmModule := crm.NewModule(pool, eventBus, val, log)
	scoringModule := scoring.NewModule(pool, eventBus, cfg, val, log)
	planningModule := eventplanning.NewModule(pool, eventBus, val, log)
	vendorsModule := vendors.NewModule(pool, val, log)
	sponsorsModule := sponsors.NewModule(pool, val, log)
	notificationModule := notification.NewModule(pool, val, log)

	// Interactions trigger rescoring; scoring and planning changes feed the
	// notification outbox.
	scoringModule.RegisterHandlers(eventBus)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Guard:    accessModule.Guard,
		Modules: []apphttp.Module{
			authModule,
			accessModule,
			crmModule,
			scoringModule,
			planningModule,
			vendorsModule,
			sponsorsModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		notificationModule.SSE().Close()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
