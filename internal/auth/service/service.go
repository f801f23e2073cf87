// Package service implements authentication and onboarding flows.
//
// This is where the tenant binding is minted: the outfitter id baked into
// every access token comes from the user row (or, for invites, the invite
// row), so downstream request scoping never depends on anything the client
// can choose.
package service

import (
	"context"
	"time"

	"outfitter_backend/internal/auth/password"
	"outfitter_backend/internal/auth/repository"
	"outfitter_backend/internal/auth/token"
	"outfitter_backend/internal/events"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/config"
	"outfitter_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// TokenPair is an issued access/refresh credential pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthenticatedUser is the principal summary returned with a token pair.
type AuthenticatedUser struct {
	ID            uuid.UUID
	OutfitterID   uuid.UUID
	OutfitterName string
	Email         string
	Name          string
	Role          string
}

// Service provides authentication business logic.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates the auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

/// SignUp onboards a new outfitter: the tenant row and its first admin user
// are created atomically, then the new admin is signed in.
func (s *Service) SignUp(ctx context.Context, outfitterName, name, email, plainPassword string) (AuthenticatedUser, TokenPair, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}

	outfitter, user, err := s.repo.CreateOutfitterWithAdmin(ctx, outfitterName, email, name, hash)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}

	s.bus.Publish(ctx, events.OutfitterCreated{
		BaseEvent:   events.NewBaseEvent(),
		OutfitterID: outfitter.ID,
		Name:        outfitter.Name,
		AdminUserID: user.ID,
		AdminEmail:  user.Email,
	})
	s.log.AuthEvent("signup", user.Email, true, "")

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}
	return authenticated(user), pair, nil
}

// SignIn verifies credentials and issues tokens. Users of a deactivated
// outfitter are rejected with 403 regardless of their credentials.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (AuthenticatedUser, TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a bad password.
		s.log.AuthEvent("signin", email, false, "unknown email")
		return AuthenticatedUser{}, TokenPair{}, apperr.Unauthenticated("invalid credentials")
	}

	if !password.Verify(user.PasswordHash, plainPassword) {
		s.log.AuthEvent("signin", email, false, "bad password")
		return AuthenticatedUser{}, TokenPair{}, apperr.Unauthenticated("invalid credentials")
	}

	if !user.Active || !user.OutfitterActive {
		s.log.AuthEvent("signin", email, false, "account disabled")
		return AuthenticatedUser{}, TokenPair{}, apperr.Unauthorized("account disabled")
	}

	s.log.AuthEvent("signin", email, true, "")
	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}
	return authenticated(user), pair, nil
}

// Refresh rotates a refresh token and issues a new pair. The old token is
// revoked before the new one is stored; replaying it fails.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	hash := token.HashSHA256(refreshToken)

	stored, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return TokenPair{}, err
	}
	if stored.RevokedAt != nil || time.Now().After(stored.ExpiresAt) {
		return TokenPair{}, apperr.Unauthenticated("refresh token expired")
	}

	user, err := s.repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return TokenPair{}, apperr.Unauthenticated("invalid refresh token")
	}
	if !user.Active || !user.OutfitterActive {
		return TokenPair{}, apperr.Unauthorized("account disabled")
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return TokenPair{}, err
	}

	return s.issueTokens(ctx, user)
}

// SignOut revokes a refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken))
}

// AcceptInvite consumes a staff invite and signs the new guide in. The
// guide's outfitter comes from the invite row.
func (s *Service) AcceptInvite(ctx context.Context, rawToken, name, plainPassword string) (AuthenticatedUser, TokenPair, error) {
	invite, err := s.repo.GetStaffInvite(ctx, token.HashSHA256(rawToken))
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}
	if invite.AcceptedAt != nil || time.Now().After(invite.ExpiresAt) {
		return AuthenticatedUser{}, TokenPair{}, apperr.NotFound("invite not found")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}

	user, err := s.repo.AcceptStaffInvite(ctx, invite.ID, invite.Email, name, hash)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}
	s.log.AuthEvent("invite_accepted", user.Email, true, "")

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthenticatedUser{}, TokenPair{}, err
	}
	return authenticated(user), pair, nil
}

// Me returns the principal summary for an authenticated user id.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (AuthenticatedUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return AuthenticatedUser{}, err
	}
	return authenticated(user), nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (TokenPair, error) {
	access, err := s.signAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := token.GenerateRandomToken(32)
	if err != nil {
		return TokenPair{}, err
	}
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.StoreRefreshToken(ctx, user.ID, token.HashSHA256(refresh), expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          user.ID.String(),
		"outfitter_id": user.OutfitterID.String(),
		"role":         user.Role,
		"type":         accessTokenType,
		"iat":          now.Unix(),
		"exp":          now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func authenticated(user repository.User) AuthenticatedUser {
	return AuthenticatedUser{
		ID:            user.ID,
		OutfitterID:   user.OutfitterID,
		OutfitterName: user.OutfitterName,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
	}
}
