// Package handler exposes the locations module's HTTP endpoints.
package handler

import (
	"outfitter_backend/internal/locations/repository"
	"outfitter_backend/internal/locations/service"
	"outfitter_backend/internal/locations/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for locations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new locations handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the caller's locations.
// GET /api/v1/locations
func (h *Handler) List(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	locations, err := h.svc.List(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, locationResponse(l))
	}
	httpkit.OK(c, out)
}

// Get returns one location.
// GET /api/v1/locations/:id
func (h *Handler) Get(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid location id", nil)
		return
	}

	location, err := h.svc.Get(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, locationResponse(location))
}

// Create adds a location.
// POST /api/v1/locations (admin)
func (h *Handler) Create(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	location, err := h.svc.Create(c.Request.Context(), scope, locationParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, locationResponse(location))
}

// Update replaces a location's fields.
// PUT /api/v1/locations/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid location id", nil)
		return
	}

	var req transport.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	location, err := h.svc.Update(c.Request.Context(), scope, id, locationParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, locationResponse(location))
}

// Delete removes a location.
// DELETE /api/v1/locations/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid location id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

func locationParams(req transport.LocationRequest) repository.LocationParams {
	return repository.LocationParams{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
}

func locationResponse(l repository.Location) transport.LocationResponse {
	return transport.LocationResponse{
		ID:          l.ID,
		OutfitterID: l.OutfitterID,
		Name:        l.Name,
		Description: l.Description,
		Address:     l.Address,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
