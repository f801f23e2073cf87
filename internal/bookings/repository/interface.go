// Package repository provides tenant-scoped data access for bookings.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether the status machine allows moving from s to
// next. Completed and cancelled are terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Booking is a scheduled trip for a customer.
type Booking struct {
	ID           uuid.UUID
	OutfitterID  uuid.UUID
	CustomerID   uuid.UUID
	ExperienceID uuid.UUID
	GuideID      *uuid.UUID
	Status       Status
	PartySize    int
	StartsAt     time.Time
	EndsAt       time.Time
	TotalCents   int64
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (b Booking) OwnerOutfitterID() uuid.UUID { return b.OutfitterID }

// CreateParams carries the fields needed to create a booking. The owning
// outfitter and the total always come from the server side.
type CreateParams struct {
	CustomerID   uuid.UUID
	ExperienceID uuid.UUID
	PartySize    int
	StartsAt     time.Time
	EndsAt       time.Time
	TotalCents   int64
	Notes        string
}

// ListParams controls booking listing.
type ListParams struct {
	Status Status
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Page is one page of bookings plus the unpaginated total.
type Page struct {
	Bookings []Booking
	Total    int
}

// Repository defines tenant-scoped booking persistence.
type Repository interface {
	List(ctx context.Context, scope tenant.Scope, params ListParams) (Page, error)
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Booking, error)
	Create(ctx context.Context, scope tenant.Scope, params CreateParams) (Booking, error)
	UpdateNotes(ctx context.Context, scope tenant.Scope, id uuid.UUID, notes string) (Booking, error)
	// UpdateStatus moves the booking from exactly the given status to the
	// next one. The current status is part of the WHERE clause, so a
	// concurrent transition loses with NotFound instead of overwriting.
	UpdateStatus(ctx context.Context, scope tenant.Scope, id uuid.UUID, from, to Status) (Booking, error)
	Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error

	// AssignGuide sets the booking's guide inside one transaction: the
	// booking row is locked, the guide is verified to be an active guide of
	// the same outfitter, and an assignment audit row is written.
	AssignGuide(ctx context.Context, scope tenant.Scope, bookingID, guideID uuid.UUID) (Booking, error)
}
