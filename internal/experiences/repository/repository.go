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
	listExperiencesQuery = `
		SELECT id, outfitter_id, title, description, price_cents, duration_hours, capacity,
		       location_id, active, created_at, updated_at
		FROM experiences
		WHERE outfitter_id = $1
		ORDER BY title`

	getExperienceQuery = `
		SELECT id, outfitter_id, title, description, price_cents, duration_hours, capacity,
		       location_id, active, created_at, updated_at
		FROM experiences
		WHERE outfitter_id = $1 AND id = $2`

	insertExperienceQuery = `
		INSERT INTO experiences (outfitter_id, title, description, price_cents, duration_hours,
		                         capacity, location_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, outfitter_id, title, description, price_cents, duration_hours, capacity,
		          location_id, active, created_at, updated_at`

	updateExperienceQuery = `
		UPDATE experiences
		SET title = $3, description = $4, price_cents = $5, duration_hours = $6, capacity = $7,
		    location_id = $8, active = $9, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2
		RETURNING id, outfitter_id, title, description, price_cents, duration_hours, capacity,
		          location_id, active, created_at, updated_at`

	deleteExperienceQuery = `
		DELETE FROM experiences
		WHERE outfitter_id = $1 AND id = $2`

	locationExistsQuery = `
		SELECT EXISTS (
			SELECT 1 FROM locations WHERE outfitter_id = $1 AND id = $2
		)`
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new experiences repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns the scope's experiences ordered by title.
func (r *Repo) List(ctx context.Context, scope tenant.Scope) ([]Experience, error) {
	rows, err := r.pool.Query(ctx, listExperiencesQuery, scope.OutfitterID)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	experiences := []Experience{}
	for rows.Next() {
		var e Experience
		if err := scanExperience(rows, &e); err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

// Get fetches one experience within the scope's outfitter.
func (r *Repo) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Experience, error) {
	var e Experience
	err := scanExperience(r.pool.QueryRow(ctx, getExperienceQuery, scope.OutfitterID, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Experience{}, apperr.NotFound("experience not found")
		}
		return Experience{}, fmt.Errorf("get experience: %w", err)
	}
	return e, nil
}

// Create inserts an experience owned by the scope's outfitter.
func (r *Repo) Create(ctx context.Context, scope tenant.Scope, params ExperienceParams) (Experience, error) {
	var e Experience
	err := scanExperience(r.pool.QueryRow(ctx, insertExperienceQuery,
		scope.OutfitterID, params.Title, params.Description, params.PriceCents, params.DurationHours,
		params.Capacity, params.LocationID, params.Active), &e)
	if err != nil {
		return Experience{}, fmt.Errorf("create experience: %w", err)
	}
	return e, nil
}

// Update mutates an experience within the scope's outfitter.
func (r *Repo) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params ExperienceParams) (Experience, error) {
	var e Experience
	err := scanExperience(r.pool.QueryRow(ctx, updateExperienceQuery,
		scope.OutfitterID, id, params.Title, params.Description, params.PriceCents, params.DurationHours,
		params.Capacity, params.LocationID, params.Active), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Experience{}, apperr.NotFound("experience not found")
		}
		return Experience{}, fmt.Errorf("update experience: %w", err)
	}
	return e, nil
}

// Delete removes an experience within the scope's outfitter.
func (r *Repo) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteExperienceQuery, scope.OutfitterID, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("experience not found")
	}
	return nil
}

// LocationExists checks a location id against the scope's outfitter.
func (r *Repo) LocationExists(ctx context.Context, scope tenant.Scope, locationID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, locationExistsQuery, scope.OutfitterID, locationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check location: %w", err)
	}
	return exists, nil
}

func scanExperience(row pgx.Row, e *Experience) error {
	return row.Scan(&e.ID, &e.OutfitterID, &e.Title, &e.Description, &e.PriceCents, &e.DurationHours,
		&e.Capacity, &e.LocationID, &e.Active, &e.CreatedAt, &e.UpdatedAt)
}
