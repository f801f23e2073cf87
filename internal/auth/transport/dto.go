// Package transport defines request/response DTOs for the auth module.
package transport

import "github.com/google/uuid"

// SignUpRequest onboards a new outfitter with its first admin user.
// Note there is no outfitter id field anywhere in this package: tenants are
// created server-side and existing tenants can never be chosen by a client.
type SignUpRequest struct {
	OutfitterName string `json:"outfitterName" validate:"required,min=2,max=120"`
	Name          string `json:"name" validate:"required,min=2,max=120"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=10,max=128"`
}

// SignInRequest authenticates an existing user.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AcceptInviteRequest consumes a staff invite.
type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Password string `json:"password" validate:"required,min=10,max=128"`
}

// UserResponse is the principal summary returned to clients.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	OutfitterID   uuid.UUID `json:"outfitterId"`
	OutfitterName string    `json:"outfitterName"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
}

// SessionResponse carries tokens plus the signed-in user.
type SessionResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// TokensResponse carries a rotated token pair.
type TokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
