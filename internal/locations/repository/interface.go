// Package repository provides tenant-scoped data access for locations.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Location is a named place an outfitter runs trips from.
type Location struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	Name        string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (l Location) OwnerOutfitterID() uuid.UUID { return l.OutfitterID }

// LocationParams carries the client-writable location fields.
type LocationParams struct {
	Name        string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
}

// Repository defines tenant-scoped location persistence.
type Repository interface {
	List(ctx context.Context, scope tenant.Scope) ([]Location, error)
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Location, error)
	Create(ctx context.Context, scope tenant.Scope, params LocationParams) (Location, error)
	Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params LocationParams) (Location, error)
	Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error
}
