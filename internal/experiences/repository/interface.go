// Package repository provides tenant-scoped data access for experiences,
// the bookable trip offerings of an outfitter.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Experience is a bookable trip offering. Prices are integer cents.
type Experience struct {
	ID            uuid.UUID
	OutfitterID   uuid.UUID
	Title         string
	Description   string
	PriceCents    int64
	DurationHours int
	Capacity      int
	LocationID    *uuid.UUID
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (e Experience) OwnerOutfitterID() uuid.UUID { return e.OutfitterID }

// ExperienceParams carries the client-writable experience fields.
type ExperienceParams struct {
	Title         string
	Description   string
	PriceCents    int64
	DurationHours int
	Capacity      int
	LocationID    *uuid.UUID
	Active        bool
}

// Repository defines tenant-scoped experience persistence.
type Repository interface {
	List(ctx context.Context, scope tenant.Scope) ([]Experience, error)
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Experience, error)
	Create(ctx context.Context, scope tenant.Scope, params ExperienceParams) (Experience, error)
	Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params ExperienceParams) (Experience, error)
	Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error

	// LocationExists reports whether a location id belongs to the scope's
	// outfitter. Linking an experience to a foreign location must fail the
	// same way as linking to a nonexistent one.
	LocationExists(ctx context.Context, scope tenant.Scope, locationID uuid.UUID) (bool, error)
}
