package service

import (
	"context"
	"testing"
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

type fakeRepo struct {
	bookings map[uuid.UUID]repository.Booking
	guides   map[uuid.UUID]uuid.UUID // guide id -> outfitter id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[uuid.UUID]repository.Booking),
		guides:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeRepo) List(_ context.Context, scope tenant.Scope, _ repository.ListParams) (repository.Page, error) {
	page := repository.Page{Bookings: []repository.Booking{}}
	for _, b := range f.bookings {
		if b.OutfitterID == scope.OutfitterID {
			page.Bookings = append(page.Bookings, b)
		}
	}
	page.Total = len(page.Bookings)
	return page, nil
}

func (f *fakeRepo) Get(_ context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.OutfitterID != scope.OutfitterID {
		return repository.Booking{}, apperr.NotFound("booking not found")
	}
	return b, nil
}

func (f *fakeRepo) Create(_ context.Context, scope tenant.Scope, params repository.CreateParams) (repository.Booking, error) {
	b := repository.Booking{
		ID:           uuid.New(),
		OutfitterID:  scope.OutfitterID,
		CustomerID:   params.CustomerID,
		ExperienceID: params.ExperienceID,
		Status:       repository.StatusPending,
		PartySize:    params.PartySize,
		StartsAt:     params.StartsAt,
		EndsAt:       params.EndsAt,
		TotalCents:   params.TotalCents,
		Notes:        params.Notes,
	}
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeRepo) UpdateNotes(_ context.Context, scope tenant.Scope, id uuid.UUID, notes string) (repository.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.OutfitterID != scope.OutfitterID {
		return repository.Booking{}, apperr.NotFound("booking not found")
	}
	b.Notes = notes
	f.bookings[id] = b
	return b, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, scope tenant.Scope, id uuid.UUID, from, to repository.Status) (repository.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.OutfitterID != scope.OutfitterID || b.Status != from {
		return repository.Booking{}, apperr.NotFound("booking not found")
	}
	b.Status = to
	f.bookings[id] = b
	return b, nil
}

func (f *fakeRepo) Delete(_ context.Context, scope tenant.Scope, id uuid.UUID) error {
	b, ok := f.bookings[id]
	if !ok || b.OutfitterID != scope.OutfitterID {
		return apperr.NotFound("booking not found")
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeRepo) AssignGuide(_ context.Context, scope tenant.Scope, bookingID, guideID uuid.UUID) (repository.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.OutfitterID != scope.OutfitterID {
		return repository.Booking{}, apperr.NotFound("booking not found")
	}
	if f.guides[guideID] != scope.OutfitterID {
		return repository.Booking{}, apperr.NotFound("guide not found")
	}
	b.GuideID = &guideID
	f.bookings[bookingID] = b
	return b, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

type fakeDirectory struct {
	customers map[uuid.UUID]customersrepo.Customer
}

func (f *fakeDirectory) Get(_ context.Context, scope tenant.Scope, id uuid.UUID) (customersrepo.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.OutfitterID != scope.OutfitterID {
		return customersrepo.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

type fakeCatalog struct {
	experiences map[uuid.UUID]experiencesrepo.Experience
}

func (f *fakeCatalog) Get(_ context.Context, scope tenant.Scope, id uuid.UUID) (experiencesrepo.Experience, error) {
	e, ok := f.experiences[id]
	if !ok || e.OutfitterID != scope.OutfitterID {
		return experiencesrepo.Experience{}, apperr.NotFound("experience not found")
	}
	return e, nil
}

type fakeOutfitters struct {
	reminderHours int
}

func (f *fakeOutfitters) GetProfile(_ context.Context, scope tenant.Scope) (outfittersrepo.Outfitter, error) {
	return outfittersrepo.Outfitter{ID: scope.OutfitterID, Name: "Big Sky Outfitters"}, nil
}

func (f *fakeOutfitters) GetSettings(_ context.Context, scope tenant.Scope) (outfittersrepo.Settings, error) {
	return outfittersrepo.Settings{OutfitterID: scope.OutfitterID, ReminderHoursBefore: f.reminderHours}, nil
}

type fakeScheduler struct {
	scheduled []time.Time
}

func (f *fakeScheduler) ScheduleBookingReminder(_ context.Context, _, _ uuid.UUID, runAt time.Time) error {
	f.scheduled = append(f.scheduled, runAt)
	return nil
}

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	scheduler *fakeScheduler
	scope     tenant.Scope
	customer  customersrepo.Customer
	exp       experiencesrepo.Experience
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("development")
	scope := tenant.Scope{OutfitterID: uuid.New(), UserID: uuid.New(), Role: tenant.RoleAdmin}

	customer := customersrepo.Customer{
		ID:          uuid.New(),
		OutfitterID: scope.OutfitterID,
		FirstName:   "Annie",
		LastName:    "Oakley",
		Email:       "annie@example.com",
	}
	exp := experiencesrepo.Experience{
		ID:          uuid.New(),
		OutfitterID: scope.OutfitterID,
		Title:       "Elk Hunt",
		PriceCents:  150_00,
		Capacity:    4,
	}

	repo := newFakeRepo()
	scheduler := &fakeScheduler{}
	svc := New(
		repo,
		&fakeDirectory{customers: map[uuid.UUID]customersrepo.Customer{customer.ID: customer}},
		&fakeCatalog{experiences: map[uuid.UUID]experiencesrepo.Experience{exp.ID: exp}},
		&fakeOutfitters{reminderHours: 48},
		scheduler,
		email.NewSender(disabledEmail{}, log),
		events.NewInMemoryBus(log),
		log,
	)
	return &fixture{svc: svc, repo: repo, scheduler: scheduler, scope: scope, customer: customer, exp: exp}
}

type disabledEmail struct{}

func (disabledEmail) GetEmailEnabled() bool       { return false }
func (disabledEmail) GetSMTPHost() string         { return "" }
func (disabledEmail) GetSMTPPort() int            { return 0 }
func (disabledEmail) GetSMTPUsername() string     { return "" }
func (disabledEmail) GetSMTPPassword() string     { return "" }
func (disabledEmail) GetEmailFromName() string    { return "" }
func (disabledEmail) GetEmailFromAddress() string { return "" }
func (disabledEmail) GetAppBaseURL() string       { return "http://localhost" }

func (fx *fixture) createBooking(t *testing.T) repository.Booking {
	t.Helper()
	booking, err := fx.svc.Create(context.Background(), fx.scope, repository.CreateParams{
		CustomerID:   fx.customer.ID,
		ExperienceID: fx.exp.ID,
		PartySize:    2,
		StartsAt:     time.Now().Add(30 * 24 * time.Hour),
		EndsAt:       time.Now().Add(31 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func TestCreate_TotalDerivedFromExperiencePrice(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	if booking.TotalCents != 300_00 {
		t.Fatalf("total = %d, want 30000 (price x party size)", booking.TotalCents)
	}
	if booking.Status != repository.StatusPending {
		t.Fatalf("new booking status = %s, want pending", booking.Status)
	}
}

func TestCreate_ForeignCustomerIsNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.scope, repository.CreateParams{
		CustomerID:   uuid.New(),
		ExperienceID: fx.exp.ID,
		PartySize:    2,
		StartsAt:     time.Now().Add(time.Hour),
		EndsAt:       time.Now().Add(2 * time.Hour),
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want NotFound for unknown customer, got %v", err)
	}
}

func TestCreate_PartySizeOverCapacityRejected(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.scope, repository.CreateParams{
		CustomerID:   fx.customer.ID,
		ExperienceID: fx.exp.ID,
		PartySize:    10,
		StartsAt:     time.Now().Add(time.Hour),
		EndsAt:       time.Now().Add(2 * time.Hour),
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("want Validation, got %v", err)
	}
}

func TestConfirm_SchedulesReminderFromSettings(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	confirmed, err := fx.svc.Confirm(context.Background(), fx.scope, booking.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != repository.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}

	if len(fx.scheduler.scheduled) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(fx.scheduler.scheduled))
	}
	wantAt := booking.StartsAt.Add(-48 * time.Hour)
	if !fx.scheduler.scheduled[0].Equal(wantAt) {
		t.Fatalf("reminder at %v, want %v", fx.scheduler.scheduled[0], wantAt)
	}
}

func TestTransitions_InvalidMovesAreConflicts(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	// pending -> completed skips confirmation.
	if _, err := fx.svc.Complete(context.Background(), fx.scope, booking.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("pending->completed: want Conflict, got %v", err)
	}

	if _, err := fx.svc.Confirm(context.Background(), fx.scope, booking.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := fx.svc.Cancel(context.Background(), fx.scope, booking.ID); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}

	// cancelled is terminal.
	if _, err := fx.svc.Confirm(context.Background(), fx.scope, booking.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("cancelled->confirmed: want Conflict, got %v", err)
	}
}

func TestDelete_TwiceIsNotFound(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	if err := fx.svc.Delete(context.Background(), fx.scope, booking.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := fx.svc.Delete(context.Background(), fx.scope, booking.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete: want NotFound, got %v", err)
	}
}

func TestAssignGuide_ForeignGuideIsNotFound(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	ownGuide := uuid.New()
	fx.repo.guides[ownGuide] = fx.scope.OutfitterID
	foreignGuide := uuid.New()
	fx.repo.guides[foreignGuide] = uuid.New()

	if _, err := fx.svc.AssignGuide(context.Background(), fx.scope, booking.ID, ownGuide); err != nil {
		t.Fatalf("assign own guide: %v", err)
	}

	_, err := fx.svc.AssignGuide(context.Background(), fx.scope, booking.ID, foreignGuide)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("foreign guide: want NotFound, got %v", err)
	}
}

func TestTransition_ForeignTenantIsNotFound(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createBooking(t)

	intruder := tenant.Scope{OutfitterID: uuid.New(), UserID: uuid.New(), Role: tenant.RoleAdmin}
	_, err := fx.svc.Confirm(context.Background(), intruder, booking.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want NotFound, got %v", err)
	}

	// Still pending for the real owner.
	got, err := fx.svc.Get(context.Background(), fx.scope, booking.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != repository.StatusPending {
		t.Fatalf("status = %s, foreign confirm must not apply", got.Status)
	}
}
