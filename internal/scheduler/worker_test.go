package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bookingsrepo "outfitter_backend/internal/bookings/repository"
	customersrepo "outfitter_backend/internal/customers/repository"
	outfittersrepo "outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"
)

type fakeBookings struct {
	booking bookingsrepo.Booking
	err     error
	scope   tenant.Scope
}

func (f *fakeBookings) Get(_ context.Context, scope tenant.Scope, _ uuid.UUID) (bookingsrepo.Booking, error) {
	f.scope = scope
	if f.err != nil {
		return bookingsrepo.Booking{}, f.err
	}
	return f.booking, nil
}

type fakeCustomers struct {
	customer customersrepo.Customer
}

func (f *fakeCustomers) Get(context.Context, tenant.Scope, uuid.UUID) (customersrepo.Customer, error) {
	return f.customer, nil
}

type fakeOutfitters struct {
	profile outfittersrepo.Outfitter
}

func (f *fakeOutfitters) GetProfile(context.Context, tenant.Scope) (outfittersrepo.Outfitter, error) {
	return f.profile, nil
}

type recordingSender struct {
	to        string
	name      string
	outfitter string
	sent      int
}

func (r *recordingSender) SendStaffInviteEmail(context.Context, string, string, string) error {
	return nil
}

func (r *recordingSender) SendBookingConfirmationEmail(context.Context, string, string, string, time.Time) error {
	return nil
}

func (r *recordingSender) SendBookingReminderEmail(_ context.Context, toEmail, customerName, outfitterName string, _ time.Time) error {
	r.to = toEmail
	r.name = customerName
	r.outfitter = outfitterName
	r.sent++
	return nil
}

func reminderTask(t *testing.T, bookingID, outfitterID uuid.UUID) *asynq.Task {
	t.Helper()
	task, err := NewBookingReminderTask(bookingID, outfitterID)
	if err != nil {
		t.Fatalf("NewBookingReminderTask: %v", err)
	}
	return task
}

func TestBookingReminderPayloadRoundTrip(t *testing.T) {
	bookingID := uuid.New()
	outfitterID := uuid.New()

	task := reminderTask(t, bookingID, outfitterID)
	if task.Type() != TaskTypeBookingReminder {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskTypeBookingReminder)
	}

	var payload BookingReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.BookingID != bookingID || payload.OutfitterID != outfitterID {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestHandleBookingReminder_SendsForConfirmedBooking(t *testing.T) {
	outfitterID := uuid.New()
	booking := bookingsrepo.Booking{
		ID:          uuid.New(),
		OutfitterID: outfitterID,
		CustomerID:  uuid.New(),
		Status:      bookingsrepo.StatusConfirmed,
		StartsAt:    time.Now().Add(48 * time.Hour),
	}

	bookings := &fakeBookings{booking: booking}
	sender := &recordingSender{}
	w := &Worker{
		bookings: bookings,
		customers: &fakeCustomers{customer: customersrepo.Customer{
			FirstName: "Jim",
			LastName:  "Bridger",
			Email:     "jim@example.com",
		}},
		outfits: &fakeOutfitters{profile: outfittersrepo.Outfitter{Name: "Gallatin River Guides"}},
		sender:  sender,
		log:     logger.New("test"),
	}

	err := w.handleBookingReminder(context.Background(), reminderTask(t, booking.ID, outfitterID))
	if err != nil {
		t.Fatalf("handleBookingReminder: %v", err)
	}
	if sender.sent != 1 {
		t.Fatalf("sent = %d, want 1", sender.sent)
	}
	if sender.to != "jim@example.com" || sender.name != "Jim Bridger" || sender.outfitter != "Gallatin River Guides" {
		t.Fatalf("sent to %q as %q from %q", sender.to, sender.name, sender.outfitter)
	}
	if bookings.scope.OutfitterID != outfitterID {
		t.Fatalf("booking loaded with outfitter %s, want %s", bookings.scope.OutfitterID, outfitterID)
	}
}

func TestHandleBookingReminder_SkipsCancelledBooking(t *testing.T) {
	outfitterID := uuid.New()
	booking := bookingsrepo.Booking{
		ID:          uuid.New(),
		OutfitterID: outfitterID,
		Status:      bookingsrepo.StatusCancelled,
	}

	sender := &recordingSender{}
	w := &Worker{
		bookings:  &fakeBookings{booking: booking},
		customers: &fakeCustomers{},
		outfits:   &fakeOutfitters{},
		sender:    sender,
		log:       logger.New("test"),
	}

	if err := w.handleBookingReminder(context.Background(), reminderTask(t, booking.ID, outfitterID)); err != nil {
		t.Fatalf("handleBookingReminder: %v", err)
	}
	if sender.sent != 0 {
		t.Fatalf("sent = %d, want 0", sender.sent)
	}
}

func TestHandleBookingReminder_MissingBookingIsNotRetried(t *testing.T) {
	sender := &recordingSender{}
	w := &Worker{
		bookings:  &fakeBookings{err: apperr.NotFound("booking not found")},
		customers: &fakeCustomers{},
		outfits:   &fakeOutfitters{},
		sender:    sender,
		log:       logger.New("test"),
	}

	if err := w.handleBookingReminder(context.Background(), reminderTask(t, uuid.New(), uuid.New())); err != nil {
		t.Fatalf("handleBookingReminder: %v", err)
	}
	if sender.sent != 0 {
		t.Fatalf("sent = %d, want 0", sender.sent)
	}
}
