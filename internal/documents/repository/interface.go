// Package repository provides tenant-scoped data access for document
// metadata. The bytes live in object storage; only metadata and object keys
// are stored here.
package repository

import (
	"context"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Document is stored file metadata. ObjectKey is prefixed with the owning
// outfitter id, so even a leaked key names its tenant.
type Document struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	CustomerID  *uuid.UUID
	BookingID   *uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	ObjectKey   string
	UploadedBy  uuid.UUID
	CreatedAt   time.Time
}

// OwnerOutfitterID implements tenant.Owned.
func (d Document) OwnerOutfitterID() uuid.UUID { return d.OutfitterID }

// CreateParams carries the fields for a new document record.
type CreateParams struct {
	CustomerID  *uuid.UUID
	BookingID   *uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	ObjectKey   string
}

// ListFilter narrows listing to one customer or booking.
type ListFilter struct {
	CustomerID *uuid.UUID
	BookingID  *uuid.UUID
}

// Repository defines tenant-scoped document metadata persistence.
type Repository interface {
	List(ctx context.Context, scope tenant.Scope, filter ListFilter) ([]Document, error)
	Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Document, error)
	Create(ctx context.Context, scope tenant.Scope, params CreateParams) (Document, error)
	Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error
	// CustomerExists reports whether a customer id belongs to the scope's
	// outfitter. Foreign customers read as absent.
	CustomerExists(ctx context.Context, scope tenant.Scope, customerID uuid.UUID) (bool, error)
	// BookingExists reports whether a booking id belongs to the scope's
	// outfitter. Foreign bookings read as absent.
	BookingExists(ctx context.Context, scope tenant.Scope, bookingID uuid.UUID) (bool, error)
}
