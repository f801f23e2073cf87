package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bookingsrepo "outfitter_backend/internal/bookings/repository"
	customersrepo "outfitter_backend/internal/customers/repository"
	"outfitter_backend/internal/email"
	outfittersrepo "outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/config"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"
)

// BookingLoader fetches a booking within a tenant scope.
type BookingLoader interface {
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (bookingsrepo.Booking, error)
}

// CustomerDirectory resolves the customer a reminder goes to.
type CustomerDirectory interface {
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (customersrepo.Customer, error)
}

// OutfitterInfo resolves the tenant's display name for the email.
type OutfitterInfo interface {
	GetProfile(ctx context.Context, scope tenant.Scope) (outfittersrepo.Outfitter, error)
}

// Worker consumes scheduled tasks from Redis and dispatches them.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	bookings  BookingLoader
	customers CustomerDirectory
	outfits   OutfitterInfo
	sender    email.Sender
	log       *logger.Logger
}

// NewWorker builds the asynq server and registers task handlers.
func NewWorker(cfg config.SchedulerConfig, bookings BookingLoader, customers CustomerDirectory, outfits OutfitterInfo, sender email.Sender, log *logger.Logger) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		bookings:  bookings,
		customers: customers,
		outfits:   outfits,
		sender:    sender,
		log:       log,
	}
	w.mux.HandleFunc(TaskTypeBookingReminder, w.handleBookingReminder)
	return w, nil
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (w *Worker) handleBookingReminder(ctx context.Context, task *asynq.Task) error {
	var payload BookingReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal booking reminder payload: %w", err)
	}

	// The outfitter id comes from the task we enqueued ourselves, not
	// from a client, so a system scope for that tenant is safe here.
	scope := tenant.SystemScope(payload.OutfitterID)

	booking, err := w.bookings.Get(ctx, scope, payload.BookingID)
	if err != nil {
		if apperr.IsNotFound(err) {
			w.log.Info("reminder skipped, booking gone", slog.String("booking_id", payload.BookingID.String()))
			return nil
		}
		return fmt.Errorf("load booking: %w", err)
	}
	if booking.Status != bookingsrepo.StatusConfirmed {
		w.log.Info("reminder skipped, booking no longer confirmed",
			slog.String("booking_id", booking.ID.String()),
			slog.String("status", string(booking.Status)),
		)
		return nil
	}

	customer, err := w.customers.Get(ctx, scope, booking.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}
	profile, err := w.outfits.GetProfile(ctx, scope)
	if err != nil {
		return fmt.Errorf("load outfitter profile: %w", err)
	}

	name := customer.FirstName + " " + customer.LastName
	if err := w.sender.SendBookingReminderEmail(ctx, customer.Email, name, profile.Name, booking.StartsAt); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}

	w.log.Info("booking reminder sent",
		slog.String("booking_id", booking.ID.String()),
		slog.String("outfitter_id", booking.OutfitterID.String()),
	)
	return nil
}
