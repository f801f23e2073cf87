// Package handler exposes the documents module's HTTP endpoints.
package handler

import (
	"outfitter_backend/internal/documents/repository"
	"outfitter_backend/internal/documents/service"
	"outfitter_backend/internal/documents/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for documents.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new documents handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the caller's documents, optionally filtered by customer or
// booking.
// GET /api/v1/documents?customerId=&bookingId=
func (h *Handler) List(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var filter repository.ListFilter
	if raw := c.Query("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.BadRequest(c, "invalid customer id", nil)
			return
		}
		filter.CustomerID = &id
	}
	if raw := c.Query("bookingId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.BadRequest(c, "invalid booking id", nil)
			return
		}
		filter.BookingID = &id
	}

	documents, err := h.svc.List(c.Request.Context(), scope, filter)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, documentResponse(d))
	}
	httpkit.OK(c, out)
}

// RequestUpload issues a presigned upload URL and records the metadata.
// POST /api/v1/documents
func (h *Handler) RequestUpload(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	grant, err := h.svc.RequestUpload(c.Request.Context(), scope, repository.CreateParams{
		CustomerID:  req.CustomerID,
		BookingID:   req.BookingID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.UploadResponse{
		Document:  documentResponse(grant.Document),
		UploadURL: grant.UploadURL,
	})
}

// Download issues a presigned download URL.
// GET /api/v1/documents/:id/download
func (h *Handler) Download(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid document id", nil)
		return
	}

	presigned, err := h.svc.DownloadURL(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.DownloadResponse{URL: presigned.URL, ExpiresAt: presigned.ExpiresAt})
}

// Delete removes a document.
// DELETE /api/v1/documents/:id
func (h *Handler) Delete(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid document id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

func documentResponse(d repository.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:          d.ID,
		OutfitterID: d.OutfitterID,
		CustomerID:  d.CustomerID,
		BookingID:   d.BookingID,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}
