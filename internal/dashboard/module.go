// Package dashboard provides the per-tenant overview bounded context.
package dashboard

import (
	"time"

	"outfitter_backend/internal/dashboard/handler"
	"outfitter_backend/internal/dashboard/repository"
	"outfitter_backend/internal/dashboard/service"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the dashboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the dashboard module. cache may be nil
// to disable caching.
func NewModule(pool *pgxpool.Pool, cache *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cache, cacheTTL, log)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "dashboard" }

// RegisterRoutes mounts the dashboard route for all staff.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard", m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
