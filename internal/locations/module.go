// Package locations provides the trip-location bounded context.
package locations

import (
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/internal/locations/handler"
	"outfitter_backend/internal/locations/repository"
	"outfitter_backend/internal/locations/service"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the locations bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the locations module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "locations" }

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts location routes. Reads for all staff, writes for
// admins.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/locations", m.handler.List)
	ctx.Protected.GET("/locations/:id", m.handler.Get)

	ctx.Admin.POST("/locations", m.handler.Create)
	ctx.Admin.PUT("/locations/:id", m.handler.Update)
	ctx.Admin.DELETE("/locations/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
