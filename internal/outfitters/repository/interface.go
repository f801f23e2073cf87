// Package repository provides tenant-scoped data access for the outfitters
// bounded context: the tenant profile, its settings row, and its staff.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Outfitter is the tenant root entity.
type Outfitter struct {
	ID           uuid.UUID
	Name         string
	ContactEmail string
	Phone        string
	Website      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerOutfitterID implements tenant.Owned. The outfitter is its own owner.
func (o Outfitter) OwnerOutfitterID() uuid.UUID { return o.ID }

// Settings holds per-tenant operational defaults. Exactly one row per
// outfitter, seeded at onboarding.
type Settings struct {
	OutfitterID         uuid.UUID
	Timezone            string
	Currency            string
	BookingLeadTimeHrs  int
	ReminderHoursBefore int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (s Settings) OwnerOutfitterID() uuid.UUID { return s.OutfitterID }

// StaffMember is a user row viewed through the staff-management lens.
type StaffMember struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	Email       string
	Name        string
	Role        string
	Active      bool
	CreatedAt   time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (m StaffMember) OwnerOutfitterID() uuid.UUID { return m.OutfitterID }

// StaffInvite is a pending invitation to join the outfitter as staff.
type StaffInvite struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	Email       string
	Role        string
	InvitedByID uuid.UUID
	ExpiresAt   time.Time
	AcceptedAt  *time.Time
	CreatedAt   time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (i StaffInvite) OwnerOutfitterID() uuid.UUID { return i.OutfitterID }

// UpdateOutfitterParams carries the mutable profile fields.
type UpdateOutfitterParams struct {
	Name         string
	ContactEmail string
	Phone        string
	Website      string
}

// SettingsParams carries the mutable settings fields.
type SettingsParams struct {
	Timezone            string
	Currency            string
	BookingLeadTimeHrs  int
	ReminderHoursBefore int
}

// Repository defines tenant-scoped persistence for the outfitters context.
// Every method takes the caller's tenant scope and filters by it in SQL;
// no method accepts a caller-chosen outfitter id.
type Repository interface {
	GetOutfitter(ctx context.Context, scope tenant.Scope) (Outfitter, error)
	UpdateOutfitter(ctx context.Context, scope tenant.Scope, params UpdateOutfitterParams) (Outfitter, error)
	DisableOutfitter(ctx context.Context, scope tenant.Scope) error

	GetSettings(ctx context.Context, scope tenant.Scope) (Settings, error)
	UpdateSettings(ctx context.Context, scope tenant.Scope, params SettingsParams) (Settings, error)
	// SeedDefaultSettings inserts the default settings row for a freshly
	// created outfitter. Called from the onboarding event handler, which is
	// the one place a bare outfitter id is trusted: it comes off the event
	// the auth module published, not off a request.
	SeedDefaultSettings(ctx context.Context, outfitterID uuid.UUID) error

	ListStaff(ctx context.Context, scope tenant.Scope) ([]StaffMember, error)
	GetStaffMember(ctx context.Context, scope tenant.Scope, id uuid.UUID) (StaffMember, error)
	SetStaffActive(ctx context.Context, scope tenant.Scope, id uuid.UUID, active bool) error

	CreateStaffInvite(ctx context.Context, scope tenant.Scope, email, role, tokenHash string, expiresAt time.Time) (StaffInvite, error)
	ListStaffInvites(ctx context.Context, scope tenant.Scope) ([]StaffInvite, error)
}
