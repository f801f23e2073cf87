package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/tenant"
)

const (
	listDocumentsQuery = `
		SELECT id, outfitter_id, customer_id, booking_id, file_name, content_type, size_bytes,
		       object_key, uploaded_by, created_at
		FROM documents
		WHERE outfitter_id = $1
		  AND ($2::uuid IS NULL OR customer_id = $2)
		  AND ($3::uuid IS NULL OR booking_id = $3)
		ORDER BY created_at DESC`

	getDocumentQuery = `
		SELECT id, outfitter_id, customer_id, booking_id, file_name, content_type, size_bytes,
		       object_key, uploaded_by, created_at
		FROM documents
		WHERE outfitter_id = $1 AND id = $2`

	insertDocumentQuery = `
		INSERT INTO documents (outfitter_id, customer_id, booking_id, file_name, content_type,
		                       size_bytes, object_key, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, outfitter_id, customer_id, booking_id, file_name, content_type, size_bytes,
		          object_key, uploaded_by, created_at`

	deleteDocumentQuery = `
		DELETE FROM documents
		WHERE outfitter_id = $1 AND id = $2`

	customerExistsQuery = `
		SELECT EXISTS (
			SELECT 1 FROM customers WHERE outfitter_id = $1 AND id = $2
		)`

	bookingExistsQuery = `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE outfitter_id = $1 AND id = $2
		)`
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new documents repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns the scope's documents, optionally filtered, newest first.
func (r *Repo) List(ctx context.Context, scope tenant.Scope, filter ListFilter) ([]Document, error) {
	rows, err := r.pool.Query(ctx, listDocumentsQuery, scope.OutfitterID, filter.CustomerID, filter.BookingID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	documents := []Document{}
	for rows.Next() {
		var d Document
		if err := scanDocument(rows, &d); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

// Get fetches one document within the scope's outfitter.
func (r *Repo) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Document, error) {
	var d Document
	err := scanDocument(r.pool.QueryRow(ctx, getDocumentQuery, scope.OutfitterID, id), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, apperr.NotFound("document not found")
		}
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// Create inserts a document record owned by the scope's outfitter.
func (r *Repo) Create(ctx context.Context, scope tenant.Scope, params CreateParams) (Document, error) {
	var d Document
	err := scanDocument(r.pool.QueryRow(ctx, insertDocumentQuery,
		scope.OutfitterID, params.CustomerID, params.BookingID, params.FileName, params.ContentType,
		params.SizeBytes, params.ObjectKey, scope.UserID), &d)
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

// Delete removes a document record within the scope's outfitter.
func (r *Repo) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteDocumentQuery, scope.OutfitterID, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("document not found")
	}
	return nil
}

// CustomerExists checks a customer id within the scope's outfitter.
func (r *Repo) CustomerExists(ctx context.Context, scope tenant.Scope, customerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, customerExistsQuery, scope.OutfitterID, customerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer exists: %w", err)
	}
	return exists, nil
}

// BookingExists checks a booking id within the scope's outfitter.
func (r *Repo) BookingExists(ctx context.Context, scope tenant.Scope, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, bookingExistsQuery, scope.OutfitterID, bookingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check booking exists: %w", err)
	}
	return exists, nil
}

func scanDocument(row pgx.Row, d *Document) error {
	return row.Scan(&d.ID, &d.OutfitterID, &d.CustomerID, &d.BookingID, &d.FileName, &d.ContentType,
		&d.SizeBytes, &d.ObjectKey, &d.UploadedBy, &d.CreatedAt)
}
