// Package auth provides the authentication bounded context module:
// outfitter onboarding, sign-in, token rotation, and invite acceptance.
package auth

import (
	"outfitter_backend/internal/auth/handler"
	"outfitter_backend/internal/auth/repository"
	"outfitter_backend/internal/auth/service"
	"outfitter_backend/internal/events"
	apphttp "outfitter_backend/internal/http"
	"outfitter_backend/platform/config"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts auth routes. Credential endpoints sit behind the
// stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.Public.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/signup", m.handler.SignUp)
	authGroup.POST("/signin", m.handler.SignIn)
	authGroup.POST("/refresh", m.handler.Refresh)
	authGroup.POST("/signout", m.handler.SignOut)
	authGroup.POST("/invites/accept", m.handler.AcceptInvite)

	ctx.Protected.GET("/auth/me", m.handler.Me)
}

var _ apphttp.Module = (*Module)(nil)
