// Package handler exposes the outfitters module's HTTP endpoints.
package handler

import (
	"outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/internal/outfitters/service"
	"outfitter_backend/internal/outfitters/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the outfitters module.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new outfitters handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetProfile returns the caller's outfitter.
// GET /api/v1/outfitters/me
func (h *Handler) GetProfile(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	outfitter, err := h.svc.GetProfile(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, outfitterResponse(outfitter))
}

// UpdateProfile updates the caller's outfitter.
// PUT /api/v1/outfitters/me (admin)
func (h *Handler) UpdateProfile(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	outfitter, err := h.svc.UpdateProfile(c.Request.Context(), scope, repository.UpdateOutfitterParams{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Website:      req.Website,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, outfitterResponse(outfitter))
}

// Disable soft-disables the caller's outfitter.
// POST /api/v1/outfitters/me/disable (admin)
func (h *Handler) Disable(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	if err := h.svc.Disable(c.Request.Context(), scope); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

// GetSettings returns the caller's tenant settings.
// GET /api/v1/outfitters/me/settings
func (h *Handler) GetSettings(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	settings, err := h.svc.GetSettings(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settingsResponse(settings))
}

// UpdateSettings replaces the caller's tenant settings.
// PUT /api/v1/outfitters/me/settings (admin)
func (h *Handler) UpdateSettings(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	settings, err := h.svc.UpdateSettings(c.Request.Context(), scope, repository.SettingsParams{
		Timezone:            req.Timezone,
		Currency:            req.Currency,
		BookingLeadTimeHrs:  req.BookingLeadTimeHrs,
		ReminderHoursBefore: req.ReminderHoursBefore,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settingsResponse(settings))
}

// ListStaff lists the caller's staff members.
// GET /api/v1/staff
func (h *Handler) ListStaff(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	staff, err := h.svc.ListStaff(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.StaffMemberResponse, 0, len(staff))
	for _, m := range staff {
		out = append(out, transport.StaffMemberResponse{
			ID:        m.ID,
			Email:     m.Email,
			Name:      m.Name,
			Role:      m.Role,
			Active:    m.Active,
			CreatedAt: m.CreatedAt,
		})
	}
	httpkit.OK(c, out)
}

// SetStaffActive enables or disables a staff member.
// PATCH /api/v1/staff/:id/active (admin)
func (h *Handler) SetStaffActive(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid staff id", nil)
		return
	}

	var req transport.SetStaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.SetStaffActive(c.Request.Context(), scope, staffID, req.Active); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

// InviteStaff invites a new staff member.
// POST /api/v1/staff/invites (admin)
func (h *Handler) InviteStaff(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.InviteStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	invite, err := h.svc.InviteStaff(c.Request.Context(), scope, req.Email, req.Role)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, inviteResponse(invite))
}

// ListInvites lists pending staff invites.
// GET /api/v1/staff/invites (admin)
func (h *Handler) ListInvites(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	invites, err := h.svc.ListInvites(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.StaffInviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, inviteResponse(inv))
	}
	httpkit.OK(c, out)
}

func outfitterResponse(o repository.Outfitter) transport.OutfitterResponse {
	return transport.OutfitterResponse{
		ID:           o.ID,
		Name:         o.Name,
		ContactEmail: o.ContactEmail,
		Phone:        o.Phone,
		Website:      o.Website,
		Active:       o.Active,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func settingsResponse(s repository.Settings) transport.SettingsResponse {
	return transport.SettingsResponse{
		Timezone:            s.Timezone,
		Currency:            s.Currency,
		BookingLeadTimeHrs:  s.BookingLeadTimeHrs,
		ReminderHoursBefore: s.ReminderHoursBefore,
		UpdatedAt:           s.UpdatedAt,
	}
}

func inviteResponse(inv repository.StaffInvite) transport.StaffInviteResponse {
	return transport.StaffInviteResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}
