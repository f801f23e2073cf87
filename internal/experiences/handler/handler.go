// Package handler exposes the experiences module's HTTP endpoints.
package handler

import (
	"outfitter_backend/internal/experiences/repository"
	"outfitter_backend/internal/experiences/service"
	"outfitter_backend/internal/experiences/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for experiences.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new experiences handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the caller's experiences.
// GET /api/v1/experiences
func (h *Handler) List(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	experiences, err := h.svc.List(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		out = append(out, experienceResponse(e))
	}
	httpkit.OK(c, out)
}

// Get returns one experience.
// GET /api/v1/experiences/:id
func (h *Handler) Get(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid experience id", nil)
		return
	}

	experience, err := h.svc.Get(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, experienceResponse(experience))
}

// Create adds an experience.
// POST /api/v1/experiences (admin)
func (h *Handler) Create(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	experience, err := h.svc.Create(c.Request.Context(), scope, experienceParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, experienceResponse(experience))
}

// Update replaces an experience's fields.
// PUT /api/v1/experiences/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid experience id", nil)
		return
	}

	var req transport.ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	experience, err := h.svc.Update(c.Request.Context(), scope, id, experienceParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, experienceResponse(experience))
}

// Delete removes an experience.
// DELETE /api/v1/experiences/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid experience id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

func experienceParams(req transport.ExperienceRequest) repository.ExperienceParams {
	return repository.ExperienceParams{
		Title:         req.Title,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		DurationHours: req.DurationHours,
		Capacity:      req.Capacity,
		LocationID:    req.LocationID,
		Active:        req.Active,
	}
}

func experienceResponse(e repository.Experience) transport.ExperienceResponse {
	return transport.ExperienceResponse{
		ID:            e.ID,
		OutfitterID:   e.OutfitterID,
		Title:         e.Title,
		Description:   e.Description,
		PriceCents:    e.PriceCents,
		DurationHours: e.DurationHours,
		Capacity:      e.Capacity,
		LocationID:    e.LocationID,
		Active:        e.Active,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
