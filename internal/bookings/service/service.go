// Package service contains the business logic for booking management: the
// booking lifecycle, guide assignment, and the confirmation side effects.
package service

import (
	"context"
	"fmt"
	"time"

	"outfitter_backend/internal/bookings/repository"
	customersrepo "outfitter_backend/internal/customers/repository"
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	experiencesrepo "outfitter_backend/internal/experiences/repository"
	outfittersrepo "outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100

	defaultReminderHours = 24
)

// CustomerDirectory resolves customers within the caller's tenant.
type CustomerDirectory interface {
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (customersrepo.Customer, error)
}

// ExperienceCatalog resolves experiences within the caller's tenant.
type ExperienceCatalog interface {
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (experiencesrepo.Experience, error)
}

// OutfitterInfo resolves the caller's tenant profile and settings.
type OutfitterInfo interface {
	GetProfile(ctx context.Context, scope tenant.Scope) (outfittersrepo.Outfitter, error)
	GetSettings(ctx context.Context, scope tenant.Scope) (outfittersrepo.Settings, error)
}

// ReminderScheduler enqueues a booking reminder for later processing.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, bookingID, outfitterID uuid.UUID, runAt time.Time) error
}

// Service implements booking business logic.
type Service struct {
	repo        repository.Repository
	customers   CustomerDirectory
	experiences ExperienceCatalog
	outfitters  OutfitterInfo
	scheduler   ReminderScheduler
	sender      email.Sender
	bus         events.Bus
	log         *logger.Logger
}

// New creates a new bookings service.
func New(
	repo repository.Repository,
	customers CustomerDirectory,
	experiences ExperienceCatalog,
	outfitters OutfitterInfo,
	scheduler ReminderScheduler,
	sender email.Sender,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		customers:   customers,
		experiences: experiences,
		outfitters:  outfitters,
		scheduler:   scheduler,
		sender:      sender,
		bus:         bus,
		log:         log,
	}
}

// RegisterHandlers subscribes the confirmation email path to the bus, off
// the request path.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.BookingConfirmed{}.EventName(), events.HandlerFunc(s.handleBookingConfirmed))
}

func (s *Service) handleBookingConfirmed(ctx context.Context, event events.Event) error {
	confirmed, ok := event.(events.BookingConfirmed)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	startsAt, err := time.Parse(time.RFC3339, confirmed.StartsAt)
	if err != nil {
		return fmt.Errorf("parse booking start: %w", err)
	}
	return s.sender.SendBookingConfirmationEmail(ctx, confirmed.CustomerEmail, confirmed.CustomerName,
		confirmed.OutfitterName, startsAt)
}

// List returns one page of the caller's bookings.
func (s *Service) List(ctx context.Context, scope tenant.Scope, params repository.ListParams) (repository.Page, error) {
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Status != "" {
		switch params.Status {
		case repository.StatusPending, repository.StatusConfirmed, repository.StatusCompleted, repository.StatusCancelled:
		default:
			return repository.Page{}, apperr.Validation("unknown booking status")
		}
	}
	return s.repo.List(ctx, scope, params)
}

// Get fetches one of the caller's bookings.
func (s *Service) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error) {
	booking, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "booking", id.String())
		}
		return repository.Booking{}, err
	}
	return booking, nil
}

// Create books a trip. Customer and experience ids resolve within the
// caller's tenant, so foreign ids fail as NotFound before any row is
// written. The total is derived server-side from the experience price.
func (s *Service) Create(ctx context.Context, scope tenant.Scope, params repository.CreateParams) (repository.Booking, error) {
	if !params.StartsAt.Before(params.EndsAt) {
		return repository.Booking{}, apperr.Validation("booking must end after it starts")
	}

	if _, err := s.customers.Get(ctx, scope, params.CustomerID); err != nil {
		return repository.Booking{}, err
	}
	experience, err := s.experiences.Get(ctx, scope, params.ExperienceID)
	if err != nil {
		return repository.Booking{}, err
	}
	if params.PartySize > experience.Capacity {
		return repository.Booking{}, apperr.Validation("party size exceeds experience capacity")
	}

	params.TotalCents = experience.PriceCents * int64(params.PartySize)
	return s.repo.Create(ctx, scope, params)
}

// UpdateNotes mutates a booking's notes after re-checking ownership.
func (s *Service) UpdateNotes(ctx context.Context, scope tenant.Scope, id uuid.UUID, notes string) (repository.Booking, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return repository.Booking{}, err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return repository.Booking{}, err
	}
	return s.repo.UpdateNotes(ctx, scope, id, notes)
}

// Confirm moves a pending booking to confirmed, emails the customer, and
// schedules the pre-trip reminder.
func (s *Service) Confirm(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error) {
	booking, err := s.transition(ctx, scope, id, repository.StatusConfirmed)
	if err != nil {
		return repository.Booking{}, err
	}

	customer, err := s.customers.Get(ctx, scope, booking.CustomerID)
	if err != nil {
		// The transition already happened; notification failure is logged,
		// not rolled back.
		s.log.Error("load customer for confirmation", "error", err.Error(), "booking_id", booking.ID)
		return booking, nil
	}

	outfitterName := ""
	if profile, err := s.outfitters.GetProfile(ctx, scope); err == nil {
		outfitterName = profile.Name
	}

	s.bus.Publish(ctx, events.BookingConfirmed{
		BaseEvent:     events.NewBaseEvent(),
		BookingID:     booking.ID,
		OutfitterID:   booking.OutfitterID,
		OutfitterName: outfitterName,
		CustomerEmail: customer.Email,
		CustomerName:  customer.FirstName + " " + customer.LastName,
		StartsAt:      booking.StartsAt.Format(time.RFC3339),
	})

	s.scheduleReminder(ctx, scope, booking)
	return booking, nil
}

// Complete moves a confirmed booking to completed.
func (s *Service) Complete(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error) {
	return s.transition(ctx, scope, id, repository.StatusCompleted)
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *Service) Cancel(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error) {
	booking, err := s.transition(ctx, scope, id, repository.StatusCancelled)
	if err != nil {
		return repository.Booking{}, err
	}

	s.bus.Publish(ctx, events.BookingCancelled{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   booking.ID,
		OutfitterID: booking.OutfitterID,
	})
	return booking, nil
}

// Delete removes a booking entirely. Cancelling is the normal path; delete
// exists for records created by mistake.
func (s *Service) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return err
	}
	return s.repo.Delete(ctx, scope, id)
}

// AssignGuide assigns an active guide of the caller's outfitter to the
// booking.
func (s *Service) AssignGuide(ctx context.Context, scope tenant.Scope, bookingID, guideID uuid.UUID) (repository.Booking, error) {
	booking, err := s.repo.AssignGuide(ctx, scope, bookingID, guideID)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "booking", bookingID.String())
		}
		return repository.Booking{}, err
	}
	return booking, nil
}

// transition re-fetches the booking, asserts ownership, validates the status
// machine, then performs the compare-and-set update.
func (s *Service) transition(ctx context.Context, scope tenant.Scope, id uuid.UUID, to repository.Status) (repository.Booking, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return repository.Booking{}, err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return repository.Booking{}, err
	}
	if !existing.Status.CanTransition(to) {
		return repository.Booking{}, apperr.Conflict(fmt.Sprintf("cannot move booking from %s to %s", existing.Status, to))
	}
	return s.repo.UpdateStatus(ctx, scope, id, existing.Status, to)
}

func (s *Service) scheduleReminder(ctx context.Context, scope tenant.Scope, booking repository.Booking) {
	hours := defaultReminderHours
	if settings, err := s.outfitters.GetSettings(ctx, scope); err == nil && settings.ReminderHoursBefore > 0 {
		hours = settings.ReminderHoursBefore
	}

	runAt := booking.StartsAt.Add(-time.Duration(hours) * time.Hour)
	if runAt.Before(time.Now()) {
		return
	}
	if err := s.scheduler.ScheduleBookingReminder(ctx, booking.ID, booking.OutfitterID, runAt); err != nil {
		s.log.Error("schedule booking reminder", "error", err.Error(), "booking_id", booking.ID)
	}
}
