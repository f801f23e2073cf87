// Package outfitters provides the tenant-management bounded context:
// the outfitter profile, per-tenant settings, and staff administration.
package outfitters

import (
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/internal/outfitters/handler"
	"outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/internal/outfitters/service"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the outfitters bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the outfitters module, subscribing its
// event handlers on the bus.
func NewModule(pool *pgxpool.Pool, cfg service.Config, bus events.Bus, sender email.Sender, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, sender, log)
	svc.RegisterHandlers(bus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "outfitters" }

// Service returns the service layer for other modules (bookings reads the
// profile and settings through it).
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts outfitter and staff routes. Reads are available to
// every authenticated staff member; mutations require the admin role.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/outfitters/me", m.handler.GetProfile)
	ctx.Protected.GET("/outfitters/me/settings", m.handler.GetSettings)
	ctx.Protected.GET("/staff", m.handler.ListStaff)

	ctx.Admin.PUT("/outfitters/me", m.handler.UpdateProfile)
	ctx.Admin.POST("/outfitters/me/disable", m.handler.Disable)
	ctx.Admin.PUT("/outfitters/me/settings", m.handler.UpdateSettings)
	ctx.Admin.POST("/staff/invites", m.handler.InviteStaff)
	ctx.Admin.GET("/staff/invites", m.handler.ListInvites)
	ctx.Admin.PATCH("/staff/:id/active", m.handler.SetStaffActive)
}

var _ apphttp.Module = (*Module)(nil)
