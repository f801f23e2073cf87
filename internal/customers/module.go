// Package customers provides the customer-management bounded context.
package customers

import (
	"outfitter_backend/internal/customers/handler"
	"outfitter_backend/internal/customers/repository"
	"outfitter_backend/internal/customers/service"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the customers module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "customers" }

// Service returns the service layer for other modules (bookings resolves
// customers through it).
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts customer routes. All staff may manage customers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/customers")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
