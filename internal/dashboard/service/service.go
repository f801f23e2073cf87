// Package service assembles the dashboard snapshot: four aggregate queries
// run in parallel, fronted by a short-lived Redis cache keyed per tenant.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"
)

// Stats is the dashboard snapshot for one outfitter.
type Stats struct {
	Customers         int       `json:"customers"`
	PendingBookings   int       `json:"pendingBookings"`
	UpcomingBookings  int       `json:"upcomingBookings"`
	MonthRevenueCents int64     `json:"monthRevenueCents"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

// StatsSource runs the underlying aggregate queries.
type StatsSource interface {
	CountCustomers(ctx context.Context, scope tenant.Scope) (int, error)
	CountPendingBookings(ctx context.Context, scope tenant.Scope) (int, error)
	CountUpcomingBookings(ctx context.Context, scope tenant.Scope) (int, error)
	MonthRevenueCents(ctx context.Context, scope tenant.Scope) (int64, error)
}

// Service implements the dashboard with a per-tenant cache.
type Service struct {
	source StatsSource
	cache  *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a new dashboard service. cache may be nil, which disables
// caching entirely.
func New(source StatsSource, cache *redis.Client, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{source: source, cache: cache, ttl: ttl, log: log}
}

// cacheKey is derived from the scope, never from request input, so one
// tenant's snapshot can never be served to another.
func cacheKey(scope tenant.Scope) string {
	return fmt.Sprintf("dashboard:stats:%s", scope.OutfitterID)
}

// Stats returns the caller's dashboard snapshot, from cache when fresh.
func (s *Service) Stats(ctx context.Context, scope tenant.Scope) (Stats, error) {
	if cached, ok := s.fromCache(ctx, scope); ok {
		return cached, nil
	}

	stats, err := s.collect(ctx, scope)
	if err != nil {
		return Stats{}, err
	}

	s.store(ctx, scope, stats)
	return stats, nil
}

// collect runs the four aggregates concurrently; the first failure cancels
// the rest.
func (s *Service) collect(ctx context.Context, scope tenant.Scope) (Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.source.CountCustomers(ctx, scope)
		stats.Customers = n
		return err
	})
	g.Go(func() error {
		n, err := s.source.CountPendingBookings(ctx, scope)
		stats.PendingBookings = n
		return err
	})
	g.Go(func() error {
		n, err := s.source.CountUpcomingBookings(ctx, scope)
		stats.UpcomingBookings = n
		return err
	})
	g.Go(func() error {
		cents, err := s.source.MonthRevenueCents(ctx, scope)
		stats.MonthRevenueCents = cents
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	stats.GeneratedAt = time.Now().UTC()
	return stats, nil
}

func (s *Service) fromCache(ctx context.Context, scope tenant.Scope) (Stats, bool) {
	if s.cache == nil {
		return Stats{}, false
	}

	payload, err := s.cache.Get(ctx, cacheKey(scope)).Bytes()
	if err != nil {
		return Stats{}, false
	}
	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return Stats{}, false
	}
	return stats, true
}

func (s *Service) store(ctx context.Context, scope tenant.Scope, stats Stats) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(scope), payload, s.ttl).Err(); err != nil {
		s.log.Error("cache dashboard stats", "error", err.Error())
	}
}
