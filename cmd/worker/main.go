package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingsrepo "outfitter_backend/internal/bookings/repository"
	bookingsvc "outfitter_backend/internal/bookings/service"
	customersrepo "outfitter_backend/internal/customers/repository"
	customersvc "outfitter_backend/internal/customers/service"
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	experiencesrepo "outfitter_backend/internal/experiences/repository"
	experiencesvc "outfitter_backend/internal/experiences/service"
	outfittersrepo "outfitter_backend/internal/outfitters/repository"
	outfittersvc "outfitter_backend/internal/outfitters/service"
	"outfitter_backend/internal/scheduler"
	"outfitter_backend/platform/config"
	"outfitter_backend/platform/db"
	"outfitter_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if cfg.RedisURL == "" {
		panic("REDIS_URL is required for the reminder worker")
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	sender := email.NewSender(cfg, log)

	// The worker only reads, so the services are wired without the
	// scheduling and HTTP dependencies the API process carries.
	customersService := customersvc.New(customersrepo.New(pool), log)
	experiencesService := experiencesvc.New(experiencesrepo.New(pool), log)
	outfittersService := outfittersvc.New(outfittersrepo.New(pool), cfg, eventBus, sender, log)
	bookingsService := bookingsvc.New(
		bookingsrepo.New(pool),
		customersService,
		experiencesService,
		outfittersService,
		scheduler.NoopScheduler{},
		sender,
		eventBus,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, bookingsService, customersService, outfittersService, sender, log)
	if err != nil {
		log.Error("failed to initialize reminder worker", "error", err)
		panic("failed to initialize reminder worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}
	log.Info("worker stopped")
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
