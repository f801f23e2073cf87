// Package handler exposes the bookings module's HTTP endpoints.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"outfitter_backend/internal/bookings/repository"
	"outfitter_backend/internal/bookings/service"
	"outfitter_backend/internal/bookings/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/tenant"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	qrImageSize = 256
)

// Handler handles HTTP requests for bookings.
type Handler struct {
	svc     *service.Service
	val     *validator.Validator
	baseURL string
}

// New creates a new bookings handler. baseURL is used to build the payload
// embedded in booking QR codes.
func New(svc *service.Service, val *validator.Validator, baseURL string) *Handler {
	return &Handler{svc: svc, val: val, baseURL: baseURL}
}

// List returns a page of the caller's bookings, optionally filtered by
// status and date range.
// GET /api/v1/bookings?status=&from=&to=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	params := repository.ListParams{
		Status: repository.Status(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	}
	if from, err := parseTimeParam(c.Query("from")); err != nil {
		httpkit.BadRequest(c, "invalid from timestamp", nil)
		return
	} else if from != nil {
		params.From = from
	}
	if to, err := parseTimeParam(c.Query("to")); err != nil {
		httpkit.BadRequest(c, "invalid to timestamp", nil)
		return
	} else if to != nil {
		params.To = to
	}

	page, err := h.svc.List(c.Request.Context(), scope, params)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.BookingResponse, 0, len(page.Bookings))
	for _, b := range page.Bookings {
		out = append(out, bookingResponse(b))
	}
	httpkit.OK(c, transport.BookingListResponse{
		Bookings: out,
		Total:    page.Total,
		Limit:    limit,
		Offset:   offset,
	})
}

// Get returns one booking.
// GET /api/v1/bookings/:id
func (h *Handler) Get(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.svc.Get(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookingResponse(booking))
}

// Create books a trip.
// POST /api/v1/bookings
func (h *Handler) Create(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), scope, repository.CreateParams{
		CustomerID:   req.CustomerID,
		ExperienceID: req.ExperienceID,
		PartySize:    req.PartySize,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Notes:        req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, bookingResponse(booking))
}

// UpdateNotes replaces a booking's notes.
// PATCH /api/v1/bookings/:id/notes
func (h *Handler) UpdateNotes(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req transport.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	booking, err := h.svc.UpdateNotes(c.Request.Context(), scope, id, req.Notes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookingResponse(booking))
}

// Confirm transitions a booking to confirmed.
// POST /api/v1/bookings/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.svc.Confirm)
}

// Complete transitions a booking to completed.
// POST /api/v1/bookings/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

// Cancel transitions a booking to cancelled.
// POST /api/v1/bookings/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.svc.Cancel)
}

// Delete removes a booking.
// DELETE /api/v1/bookings/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

// AssignGuide assigns a guide to a booking.
// POST /api/v1/bookings/:id/guide (admin)
func (h *Handler) AssignGuide(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req transport.AssignGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	booking, err := h.svc.AssignGuide(c.Request.Context(), scope, id, req.GuideID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookingResponse(booking))
}

// QRCode renders a PNG QR code linking to the booking, for check-in at the
// trailhead or dock. The booking is resolved tenant-scoped first, so a
// foreign id yields 404, never an image.
// GET /api/v1/bookings/:id/qr
func (h *Handler) QRCode(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.svc.Get(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/bookings/%s", h.baseURL, booking.ID), qrcode.Medium, qrImageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Booking, error)) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := op(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookingResponse(booking))
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid booking id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func bookingResponse(b repository.Booking) transport.BookingResponse {
	return transport.BookingResponse{
		ID:           b.ID,
		OutfitterID:  b.OutfitterID,
		CustomerID:   b.CustomerID,
		ExperienceID: b.ExperienceID,
		GuideID:      b.GuideID,
		Status:       string(b.Status),
		PartySize:    b.PartySize,
		StartsAt:     b.StartsAt,
		EndsAt:       b.EndsAt,
		TotalCents:   b.TotalCents,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
