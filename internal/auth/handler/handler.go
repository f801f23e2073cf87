// Package handler exposes the auth module's HTTP endpoints.
package handler

import (
	"outfitter_backend/internal/auth/service"
	"outfitter_backend/internal/auth/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SignUp onboards a new outfitter.
// POST /api/v1/auth/signup
func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	user, pair, err := h.svc.SignUp(c.Request.Context(), req.OutfitterName, req.Name, req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, sessionResponse(user, pair))
}

// SignIn authenticates an existing user.
// POST /api/v1/auth/signin
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	user, pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, sessionResponse(user, pair))
}

// Refresh rotates a refresh token.
// POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.TokensResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignOut revokes a refresh token.
// POST /api/v1/auth/signout
func (h *Handler) SignOut(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), req.RefreshToken); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

// AcceptInvite consumes a staff invite and signs the guide in.
// POST /api/v1/auth/invites/accept
func (h *Handler) AcceptInvite(c *gin.Context) {
	var req transport.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	user, pair, err := h.svc.AcceptInvite(c.Request.Context(), req.Token, req.Name, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, sessionResponse(user, pair))
}

// Me returns the authenticated principal.
// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	user, err := h.svc.Me(c.Request.Context(), scope.UserID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, userResponse(user))
}

func sessionResponse(user service.AuthenticatedUser, pair service.TokenPair) transport.SessionResponse {
	return transport.SessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userResponse(user),
	}
}

func userResponse(user service.AuthenticatedUser) transport.UserResponse {
	return transport.UserResponse{
		ID:            user.ID,
		OutfitterID:   user.OutfitterID,
		OutfitterName: user.OutfitterName,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
	}
}
