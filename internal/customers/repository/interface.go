// Package repository provides tenant-scoped data access for customers.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Customer is a client of an outfitter.
type Customer struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (c Customer) OwnerOutfitterID() uuid.UUID { return c.OutfitterID }

// CustomerParams carries the client-writable customer fields. There is
// deliberately no outfitter id here; the owner is always taken from the
// caller's scope.
type CustomerParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string
}

// ListParams controls customer listing.
type ListParams struct {
	// Search matches name and email, case-insensitive substring.
	Search string
	Limit  int
	Offset int
}

// Page is one page of customers plus the unpaginated total.
type Page struct {
	Customers []Customer
	Total     int
}

// Repository defines tenant-scoped customer persistence.
type Repository interface {
	List(ctx context.Context, scope tenant.Scope, params ListParams) (Page, error)
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Customer, error)
	Create(ctx context.Context, scope tenant.Scope, params CustomerParams) (Customer, error)
	Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params CustomerParams) (Customer, error)
	Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error
}
