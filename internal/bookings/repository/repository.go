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

const bookingColumns = `id, outfitter_id, customer_id, experience_id, guide_id, status, party_size,
	starts_at, ends_at, total_cents, notes, created_at, updated_at`

const (
	listBookingsQuery = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE outfitter_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3::timestamptz IS NULL OR starts_at >= $3)
		  AND ($4::timestamptz IS NULL OR starts_at < $4)
		ORDER BY starts_at
		LIMIT $5 OFFSET $6`

	countBookingsQuery = `
		SELECT count(*)
		FROM bookings
		WHERE outfitter_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3::timestamptz IS NULL OR starts_at >= $3)
		  AND ($4::timestamptz IS NULL OR starts_at < $4)`

	getBookingQuery = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE outfitter_id = $1 AND id = $2`

	insertBookingQuery = `
		INSERT INTO bookings (outfitter_id, customer_id, experience_id, party_size,
		                      starts_at, ends_at, total_cents, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	updateBookingNotesQuery = `
		UPDATE bookings
		SET notes = $3, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2
		RETURNING ` + bookingColumns

	updateBookingStatusQuery = `
		UPDATE bookings
		SET status = $4, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2 AND status = $3
		RETURNING ` + bookingColumns

	deleteBookingQuery = `
		DELETE FROM bookings
		WHERE outfitter_id = $1 AND id = $2`

	lockBookingQuery = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE outfitter_id = $1 AND id = $2
		FOR UPDATE`

	guideInOutfitterQuery = `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE outfitter_id = $1 AND id = $2 AND active AND role IN ('guide', 'admin')
		)`

	setBookingGuideQuery = `
		UPDATE bookings
		SET guide_id = $3, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2
		RETURNING ` + bookingColumns

	insertGuideAssignmentQuery = `
		INSERT INTO guide_assignments (outfitter_id, booking_id, guide_id, assigned_by)
		VALUES ($1, $2, $3, $4)`
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bookings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns one page of the scope's bookings ordered by start time.
func (r *Repo) List(ctx context.Context, scope tenant.Scope, params ListParams) (Page, error) {
	var total int
	err := r.pool.QueryRow(ctx, countBookingsQuery,
		scope.OutfitterID, string(params.Status), params.From, params.To).Scan(&total)
	if err != nil {
		return Page{}, fmt.Errorf("count bookings: %w", err)
	}

	rows, err := r.pool.Query(ctx, listBookingsQuery,
		scope.OutfitterID, string(params.Status), params.From, params.To, params.Limit, params.Offset)
	if err != nil {
		return Page{}, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return Page{}, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate bookings: %w", err)
	}

	return Page{Bookings: bookings, Total: total}, nil
}

// Get fetches one booking within the scope's outfitter.
func (r *Repo) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Booking, error) {
	var b Booking
	err := scanBooking(r.pool.QueryRow(ctx, getBookingQuery, scope.OutfitterID, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound("booking not found")
		}
		return Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Create inserts a booking owned by the scope's outfitter.
func (r *Repo) Create(ctx context.Context, scope tenant.Scope, params CreateParams) (Booking, error) {
	var b Booking
	err := scanBooking(r.pool.QueryRow(ctx, insertBookingQuery,
		scope.OutfitterID, params.CustomerID, params.ExperienceID, params.PartySize,
		params.StartsAt, params.EndsAt, params.TotalCents, params.Notes), &b)
	if err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

// UpdateNotes mutates a booking's notes within the scope's outfitter.
func (r *Repo) UpdateNotes(ctx context.Context, scope tenant.Scope, id uuid.UUID, notes string) (Booking, error) {
	var b Booking
	err := scanBooking(r.pool.QueryRow(ctx, updateBookingNotesQuery, scope.OutfitterID, id, notes), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound("booking not found")
		}
		return Booking{}, fmt.Errorf("update booking notes: %w", err)
	}
	return b, nil
}

// UpdateStatus performs a compare-and-set status transition.
func (r *Repo) UpdateStatus(ctx context.Context, scope tenant.Scope, id uuid.UUID, from, to Status) (Booking, error) {
	var b Booking
	err := scanBooking(r.pool.QueryRow(ctx, updateBookingStatusQuery,
		scope.OutfitterID, id, string(from), string(to)), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound("booking not found")
		}
		return Booking{}, fmt.Errorf("update booking status: %w", err)
	}
	return b, nil
}

// Delete removes a booking within the scope's outfitter.
func (r *Repo) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteBookingQuery, scope.OutfitterID, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("booking not found")
	}
	return nil
}

// AssignGuide assigns a guide inside one transaction. The booking is locked
// first; the guide check and the write both carry the tenant filter, so a
// guide from another outfitter can never be attached.
func (r *Repo) AssignGuide(ctx context.Context, scope tenant.Scope, bookingID, guideID uuid.UUID) (Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("begin assign guide tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked Booking
	err = scanBooking(tx.QueryRow(ctx, lockBookingQuery, scope.OutfitterID, bookingID), &locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound("booking not found")
		}
		return Booking{}, fmt.Errorf("lock booking: %w", err)
	}
	if err := tenant.AssertOwned(locked, scope); err != nil {
		return Booking{}, err
	}

	var guideOK bool
	if err := tx.QueryRow(ctx, guideInOutfitterQuery, scope.OutfitterID, guideID).Scan(&guideOK); err != nil {
		return Booking{}, fmt.Errorf("check guide: %w", err)
	}
	if !guideOK {
		// Foreign or unknown guide ids are equally invisible.
		return Booking{}, apperr.NotFound("guide not found")
	}

	var b Booking
	if err := scanBooking(tx.QueryRow(ctx, setBookingGuideQuery, scope.OutfitterID, bookingID, guideID), &b); err != nil {
		return Booking{}, fmt.Errorf("set booking guide: %w", err)
	}

	if _, err := tx.Exec(ctx, insertGuideAssignmentQuery, scope.OutfitterID, bookingID, guideID, scope.UserID); err != nil {
		return Booking{}, fmt.Errorf("record guide assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("commit assign guide tx: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(&b.ID, &b.OutfitterID, &b.CustomerID, &b.ExperienceID, &b.GuideID, &b.Status,
		&b.PartySize, &b.StartsAt, &b.EndsAt, &b.TotalCents, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
}
