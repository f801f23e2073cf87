package service

import (
	"context"
	"testing"
	"time"

	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type countingSource struct {
	calls int
}

func (c *countingSource) CountCustomers(_ context.Context, _ tenant.Scope) (int, error) {
	c.calls++
	return 7, nil
}

func (c *countingSource) CountPendingBookings(_ context.Context, _ tenant.Scope) (int, error) {
	return 2, nil
}

func (c *countingSource) CountUpcomingBookings(_ context.Context, _ tenant.Scope) (int, error) {
	return 3, nil
}

func (c *countingSource) MonthRevenueCents(_ context.Context, _ tenant.Scope) (int64, error) {
	return 125_000, nil
}

func newCacheClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func scopeFor(outfitterID uuid.UUID) tenant.Scope {
	return tenant.Scope{OutfitterID: outfitterID, UserID: uuid.New(), Role: tenant.RoleAdmin}
}

func TestStats_CollectsAllAggregates(t *testing.T) {
	source := &countingSource{}
	svc := New(source, newCacheClient(t), time.Minute, logger.New("development"))

	stats, err := svc.Stats(context.Background(), scopeFor(uuid.New()))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Customers != 7 || stats.PendingBookings != 2 || stats.UpcomingBookings != 3 || stats.MonthRevenueCents != 125_000 {
		t.Fatalf("unexpected snapshot: %+v", stats)
	}
}

func TestStats_SecondCallHitsCache(t *testing.T) {
	source := &countingSource{}
	svc := New(source, newCacheClient(t), time.Minute, logger.New("development"))
	scope := scopeFor(uuid.New())

	if _, err := svc.Stats(context.Background(), scope); err != nil {
		t.Fatalf("first stats: %v", err)
	}
	if _, err := svc.Stats(context.Background(), scope); err != nil {
		t.Fatalf("second stats: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("source queried %d times, want 1 (second call should be cached)", source.calls)
	}
}

func TestStats_CacheIsPerTenant(t *testing.T) {
	source := &countingSource{}
	svc := New(source, newCacheClient(t), time.Minute, logger.New("development"))

	if _, err := svc.Stats(context.Background(), scopeFor(uuid.New())); err != nil {
		t.Fatalf("tenant A stats: %v", err)
	}
	if _, err := svc.Stats(context.Background(), scopeFor(uuid.New())); err != nil {
		t.Fatalf("tenant B stats: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("source queried %d times, want 2 (tenants must not share cache entries)", source.calls)
	}
}

func TestStats_NilCacheStillWorks(t *testing.T) {
	source := &countingSource{}
	svc := New(source, nil, time.Minute, logger.New("development"))
	scope := scopeFor(uuid.New())

	for range 2 {
		if _, err := svc.Stats(context.Background(), scope); err != nil {
			t.Fatalf("stats without cache: %v", err)
		}
	}
	if source.calls != 2 {
		t.Fatalf("source queried %d times, want 2 when caching is disabled", source.calls)
	}
}
