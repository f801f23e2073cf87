// Package bookings provides the booking bounded context: trip scheduling,
// the booking lifecycle, guide assignment, and check-in QR codes.
package bookings

import (
	"outfitter_backend/internal/bookings/handler"
	"outfitter_backend/internal/bookings/repository"
	"outfitter_backend/internal/bookings/service"
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the bookings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the bookings module. The directory,
// catalog, and outfitter dependencies are the sibling modules' services.
func NewModule(
	pool *pgxpool.Pool,
	customers service.CustomerDirectory,
	experiences service.ExperienceCatalog,
	outfitters service.OutfitterInfo,
	scheduler service.ReminderScheduler,
	sender email.Sender,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
	appBaseURL string,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, customers, experiences, outfitters, scheduler, sender, bus, log)
	svc.RegisterHandlers(bus)
	h := handler.New(svc, val, appBaseURL)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "bookings" }

// Service returns the service layer for external use (the reminder worker
// loads bookings through it).
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts booking routes. Guides work bookings day to day;
// destructive operations and guide assignment are admin-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/bookings")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.Get)
	group.GET("/:id/qr", m.handler.QRCode)
	group.PATCH("/:id/notes", m.handler.UpdateNotes)
	group.POST("/:id/confirm", m.handler.Confirm)
	group.POST("/:id/complete", m.handler.Complete)
	group.POST("/:id/cancel", m.handler.Cancel)

	ctx.Admin.POST("/bookings/:id/guide", m.handler.AssignGuide)
	ctx.Admin.DELETE("/bookings/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
