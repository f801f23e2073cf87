package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outfitter_backend/internal/auth"
	"outfitter_backend/internal/bookings"
	bookingsvc "outfitter_backend/internal/bookings/service"
	"outfitter_backend/internal/customers"
	"outfitter_backend/internal/dashboard"
	"outfitter_backend/internal/documents"
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	"outfitter_backend/internal/experiences"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/internal/http/router"
	"outfitter_backend/internal/locations"
	"outfitter_backend/internal/outfitters"
	"outfitter_backend/internal/scheduler"
	"outfitter_backend/internal/storage"
	"outfitter_backend/platform/config"
	"outfitter_backend/platform/db"
	"outfitter_backend/platform/logger"
	platformredis "outfitter_backend/platform/redis"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
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
		return db.RunMigrations(ctx, cfg, "migrations")
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

	sender := email.NewSender(cfg, log)
	val := validator.New()

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	cache := initCache(ctx, cfg, log)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	outfittersModule := outfitters.NewModule(pool, cfg, eventBus, sender, val, log)
	customersModule := customers.NewModule(pool, val, log)
	locationsModule := locations.NewModule(pool, val, log)
	experiencesModule := experiences.NewModule(pool, val, log)

	bookingsModule := bookings.NewModule(
		pool,
		customersModule.Service(),
		experiencesModule.Service(),
		outfittersModule.Service(),
		reminderScheduler,
		sender,
		eventBus,
		val,
		log,
		cfg.GetAppBaseURL(),
	)

	dashboardModule := dashboard.NewModule(pool, cache, cfg.GetDashboardCacheTTL(), log)

	modules := []apphttp.Module{
		authModule,
		outfittersModule,
		customersModule,
		locationsModule,
		experiencesModule,
		bookingsModule,
		dashboardModule,
	}

	// Documents need object storage; the rest of the API works without it.
	if cfg.IsMinIOEnabled() {
		store, err := storage.NewMinIOStore(cfg)
		if err != nil {
			log.Error("failed to initialize object storage", "error", err)
			panic("failed to initialize object storage: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure documents bucket", 5, 2*time.Second, func() error {
			return store.EnsureBucket(ctx, cfg.GetMinioBucketDocuments())
		}); err != nil {
			log.Error("failed to ensure documents bucket", "error", err, "bucket", cfg.GetMinioBucketDocuments())
			panic("failed to ensure documents bucket: " + err.Error())
		}
		log.Info("object storage initialized", "documentsBucket", cfg.GetMinioBucketDocuments())

		modules = append(modules, documents.NewModule(pool, store, cfg, val, log))
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document endpoints disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  db.NewPoolAdapter(pool),
		Modules: modules,
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
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (bookingsvc.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; booking reminders disabled")
		return scheduler.NoopScheduler{}, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return scheduler.NoopScheduler{}, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) *goredis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; dashboard cache disabled")
		return nil
	}

	client, err := platformredis.NewClient(ctx, cfg.GetRedisURL())
	if err != nil {
		log.Warn("failed to connect to redis; dashboard cache disabled", "error", err)
		return nil
	}
	return client
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
