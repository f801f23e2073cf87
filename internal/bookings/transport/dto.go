// Package transport defines request and response DTOs for bookings.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest books a trip. Customer and experience ids are
// resolved within the caller's tenant; the total is computed server-side.
type CreateBookingRequest struct {
	CustomerID   uuid.UUID `json:"customerId" validate:"required"`
	ExperienceID uuid.UUID `json:"experienceId" validate:"required"`
	PartySize    int       `json:"partySize" validate:"min=1,max=500"`
	StartsAt     time.Time `json:"startsAt" validate:"required"`
	EndsAt       time.Time `json:"endsAt" validate:"required"`
	Notes        string    `json:"notes" validate:"omitempty,max=4000"`
}

// UpdateNotesRequest replaces a booking's notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

// AssignGuideRequest assigns a guide to a booking.
type AssignGuideRequest struct {
	GuideID uuid.UUID `json:"guideId" validate:"required"`
}

// BookingResponse is one booking.
type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	OutfitterID  uuid.UUID  `json:"outfitterId"`
	CustomerID   uuid.UUID  `json:"customerId"`
	ExperienceID uuid.UUID  `json:"experienceId"`
	GuideID      *uuid.UUID `json:"guideId"`
	Status       string     `json:"status"`
	PartySize    int        `json:"partySize"`
	StartsAt     time.Time  `json:"startsAt"`
	EndsAt       time.Time  `json:"endsAt"`
	TotalCents   int64      `json:"totalCents"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BookingListResponse is one page of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
