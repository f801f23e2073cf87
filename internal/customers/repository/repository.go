package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/tenant"
)

const uniqueViolationCode = "23505"

// Every query below is keyed on outfitter_id as its first parameter. The
// tenant filter is part of the statement itself, not something callers
// remember to add.
const (
	listCustomersQuery = `
		SELECT id, outfitter_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE outfitter_id = $1
		  AND ($2 = '' OR first_name || ' ' || last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	countCustomersQuery = `
		SELECT count(*)
		FROM customers
		WHERE outfitter_id = $1
		  AND ($2 = '' OR first_name || ' ' || last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')`

	getCustomerQuery = `
		SELECT id, outfitter_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE outfitter_id = $1 AND id = $2`

	insertCustomerQuery = `
		INSERT INTO customers (outfitter_id, first_name, last_name, email, phone, notes)
		VALUES ($1, $2, $3, lower($4), $5, $6)
		RETURNING id, outfitter_id, first_name, last_name, email, phone, notes, created_at, updated_at`

	updateCustomerQuery = `
		UPDATE customers
		SET first_name = $3, last_name = $4, email = lower($5), phone = $6, notes = $7, updated_at = now()
		WHERE outfitter_id = $1 AND id = $2
		RETURNING id, outfitter_id, first_name, last_name, email, phone, notes, created_at, updated_at`

	deleteCustomerQuery = `
		DELETE FROM customers
		WHERE outfitter_id = $1 AND id = $2`
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns one page of the scope's customers plus the total count.
func (r *Repo) List(ctx context.Context, scope tenant.Scope, params ListParams) (Page, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countCustomersQuery, scope.OutfitterID, params.Search).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count customers: %w", err)
	}

	rows, err := r.pool.Query(ctx, listCustomersQuery, scope.OutfitterID, params.Search, params.Limit, params.Offset)
	if err != nil {
		return Page{}, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return Page{}, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate customers: %w", err)
	}

	return Page{Customers: customers, Total: total}, nil
}

// Get fetches one customer within the scope's outfitter. A foreign-tenant id
// matches zero rows, so it is reported exactly like a nonexistent one.
func (r *Repo) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (Customer, error) {
	var c Customer
	err := scanCustomer(r.pool.QueryRow(ctx, getCustomerQuery, scope.OutfitterID, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound("customer not found")
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Create inserts a customer owned by the scope's outfitter.
func (r *Repo) Create(ctx context.Context, scope tenant.Scope, params CustomerParams) (Customer, error) {
	var c Customer
	err := scanCustomer(r.pool.QueryRow(ctx, insertCustomerQuery,
		scope.OutfitterID, params.FirstName, params.LastName, params.Email, params.Phone, params.Notes), &c)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, apperr.Conflict("customer email already exists")
		}
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// Update mutates a customer within the scope's outfitter.
func (r *Repo) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params CustomerParams) (Customer, error) {
	var c Customer
	err := scanCustomer(r.pool.QueryRow(ctx, updateCustomerQuery,
		scope.OutfitterID, id, params.FirstName, params.LastName, params.Email, params.Phone, params.Notes), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound("customer not found")
		}
		if isUniqueViolation(err) {
			return Customer{}, apperr.Conflict("customer email already exists")
		}
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes a customer within the scope's outfitter. Deleting an id
// that is gone, or was never yours, reports NotFound either way.
func (r *Repo) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteCustomerQuery, scope.OutfitterID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("customer not found")
	}
	return nil
}

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(&c.ID, &c.OutfitterID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
