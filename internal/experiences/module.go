// Package experiences provides the trip-offering bounded context.
package experiences

import (
	"outfitter_backend/internal/experiences/handler"
	"outfitter_backend/internal/experiences/repository"
	"outfitter_backend/internal/experiences/service"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the experiences bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the experiences module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "experiences" }

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts experience routes. Reads for all staff, writes for
// admins.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/experiences", m.handler.List)
	ctx.Protected.GET("/experiences/:id", m.handler.Get)

	ctx.Admin.POST("/experiences", m.handler.Create)
	ctx.Admin.PUT("/experiences/:id", m.handler.Update)
	ctx.Admin.DELETE("/experiences/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
