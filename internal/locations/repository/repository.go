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
	listLocationsQuery = `
		SELECT id, outfitter_id, name, description, address, latitude, longitude, created_at, updated_at
		FROM locations
		WHERE outfitter_id = $1
		ORDER BY name`

	getLocationQuery = `
		SELECT id, outfitter_id, name, description, address, latitude, longitude, created_at, updated_at
		FROM locations
		WHERE outfitter_id = $1 AND id = $2`

	insertLocationQuery = `
		INSERT INTO locations (outfitter_id, name, description, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, outfitter_id, name, description, address, latitude, longitude, created_at, updated_at`

	updateLocationQuery = `
		UPDATE locations
		SET name = $3, description = $4, address = $5, latitude = $6, longitude = $7, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2
		RETURNING id, outfitter_id, name, description, address, latitude, longitude, created_at, updated_at`

	deleteLocationQuery = `
		DELETE FROM locations
		WHERE outfitter_id = $1 AND id = $2`
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new locations repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns the scope's locations ordered by name.
func (r *Repo) List(ctx context.Context, scope tenant.Scope) ([]Location, error) {
	rows, err := r.pool.Query(ctx, listLocationsQuery, scope.OutfitterID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var l Location
		if err := scanLocation(rows, &l); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Get fetches one location within the scope's outfitter.
func (r *Repo) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Location, error) {
	var l Location
	err := scanLocation(r.pool.QueryRow(ctx, getLocationQuery, scope.OutfitterID, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Location{}, apperr.NotFound("location not found")
		}
		return Location{}, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// Create inserts a location owned by the scope's outfitter.
func (r *Repo) Create(ctx context.Context, scope tenant.Scope, params LocationParams) (Location, error) {
	var l Location
	err := scanLocation(r.pool.QueryRow(ctx, insertLocationQuery,
		scope.OutfitterID, params.Name, params.Description, params.Address, params.Latitude, params.Longitude), &l)
	if err != nil {
		return Location{}, fmt.Errorf("create location: %w", err)
	}
	return l, nil
}

// Update mutates a location within the scope's outfitter.
func (r *Repo) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params LocationParams) (Location, error) {
	var l Location
	err := scanLocation(r.pool.QueryRow(ctx, updateLocationQuery,
		scope.OutfitterID, id, params.Name, params.Description, params.Address, params.Latitude, params.Longitude), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Location{}, apperr.NotFound("location not found")
		}
		return Location{}, fmt.Errorf("update location: %w", err)
	}
	return l, nil
}

// Delete removes a location within the scope's outfitter.
func (r *Repo) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteLocationQuery, scope.OutfitterID, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("location not found")
	}
	return nil
}

func scanLocation(row pgx.Row, l *Location) error {
	return row.Scan(&l.ID, &l.OutfitterID, &l.Name, &l.Description, &l.Address, &l.Latitude, &l.Longitude,
		&l.CreatedAt, &l.UpdatedAt)
}
