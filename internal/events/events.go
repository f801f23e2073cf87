// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"outfitter_backend/platform/events"
	"outfitter_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform constructors.
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = func(log *logger.Logger) *InMemoryBus { return events.NewInMemoryBus(log) }
)

// =============================================================================
// Outfitter (tenant) domain events
// =============================================================================

// OutfitterCreated is published when a new outfitter finishes onboarding.
// Modules subscribe to seed per-tenant defaults.
type OutfitterCreated struct {
	BaseEvent
	OutfitterID uuid.UUID `json:"outfitterId"`
	Name        string    `json:"name"`
	AdminUserID uuid.UUID `json:"adminUserId"`
	AdminEmail  string    `json:"adminEmail"`
}

func (e OutfitterCreated) EventName() string { return "outfitters.created" }

// StaffInvited is published when an admin invites a guide to their outfitter.
type StaffInvited struct {
	BaseEvent
	OutfitterID   uuid.UUID `json:"outfitterId"`
	OutfitterName string    `json:"outfitterName"`
	Email         string    `json:"email"`
	InviteToken   string    `json:"inviteToken"`
	InvitedByID   uuid.UUID `json:"invitedById"`
}

func (e StaffInvited) EventName() string { return "outfitters.staff.invited" }

// =============================================================================
// Booking domain events
// =============================================================================

// BookingConfirmed is published when a booking transitions to confirmed.
// The notification path sends the customer confirmation and schedules the
// reminder off this event.
type BookingConfirmed struct {
	BaseEvent
	BookingID     uuid.UUID `json:"bookingId"`
	OutfitterID   uuid.UUID `json:"outfitterId"`
	OutfitterName string    `json:"outfitterName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	StartsAt      string    `json:"startsAt"`
}

func (e BookingConfirmed) EventName() string { return "bookings.confirmed" }

// BookingCancelled is published when a booking is cancelled.
type BookingCancelled struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	OutfitterID uuid.UUID `json:"outfitterId"`
}

func (e BookingCancelled) EventName() string { return "bookings.cancelled" }
