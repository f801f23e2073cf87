// Package repository provides tenant-scoped aggregate queries for the
// dashboard.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"outfitter_backend/platform/tenant"
)

const (
	countCustomersQuery = `
		SELECT count(*) FROM customers WHERE outfitter_id = $1`

	countPendingBookingsQuery = `
		SELECT count(*) FROM bookings WHERE outfitter_id = $1 AND status = 'pending'`

	countUpcomingBookingsQuery = `
		SELECT count(*) FROM bookings
		WHERE outfitter_id = $1 AND status = 'confirmed' AND starts_at > now()`

	monthRevenueQuery = `
		SELECT COALESCE(sum(total_cents), 0) FROM bookings
		WHERE outfitter_id = $1
		  AND status IN ('confirmed', 'completed')
		  AND starts_at >= date_trunc('month', now())`
)

// Repo runs the dashboard aggregate queries.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CountCustomers returns the scope's customer count.
func (r *Repo) CountCustomers(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, countCustomersQuery, scope)
}

// CountPendingBookings returns the scope's pending booking count.
func (r *Repo) CountPendingBookings(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, countPendingBookingsQuery, scope)
}

// CountUpcomingBookings returns the scope's confirmed future booking count.
func (r *Repo) CountUpcomingBookings(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, countUpcomingBookingsQuery, scope)
}

// MonthRevenueCents returns the scope's booked revenue for the current
// month.
func (r *Repo) MonthRevenueCents(ctx context.Context, scope tenant.Scope) (int64, error) {
	var cents int64
	if err := r.pool.QueryRow(ctx, monthRevenueQuery, scope.OutfitterID).Scan(&cents); err != nil {
		return 0, fmt.Errorf("month revenue: %w", err)
	}
	return cents, nil
}

func (r *Repo) count(ctx context.Context, query string, scope tenant.Scope) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, scope.OutfitterID).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return n, nil
}
