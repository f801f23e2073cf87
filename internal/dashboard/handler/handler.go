// Package handler exposes the dashboard endpoint.
package handler

import (
	"outfitter_backend/internal/dashboard/service"
	"outfitter_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Stats returns the caller's dashboard snapshot.
// GET /api/v1/dashboard
func (h *Handler) Stats(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, stats)
}
