// Package documents provides the tenant document bounded context backed by
// S3-compatible object storage.
package documents

import (
	"outfitter_backend/internal/documents/handler"
	"outfitter_backend/internal/documents/repository"
	"outfitter_backend/internal/documents/service"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/internal/storage"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the documents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the documents module.
func NewModule(pool *pgxpool.Pool, store storage.ObjectStore, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "documents" }

// RegisterRoutes mounts document routes for all staff.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/documents")
	group.GET("", m.handler.List)
	group.POST("", m.handler.RequestUpload)
	group.GET("/:id/download", m.handler.Download)
	group.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
