package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated principal's persisted record. Every user belongs
// to exactly one outfitter for its entire lifetime; cross-tenant
// reassignment is not an operation this layer offers.
type User struct {
	ID           uuid.UUID
	OutfitterID  uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	// OutfitterActive mirrors the owning outfitter's active flag so the
	// sign-in path can reject disabled accounts in one read.
	OutfitterActive bool
	OutfitterName   string
}

// Outfitter is the tenant root record.
type Outfitter struct {
	ID     uuid.UUID
	Name   string
	Active bool
}

// RefreshToken is a stored (hashed) refresh credential.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// StaffInvite is a pending invitation for a guide to join an outfitter.
type StaffInvite struct {
	ID          uuid.UUID
	OutfitterID uuid.UUID
	Email       string
	TokenHash   string
	ExpiresAt   time.Time
	AcceptedAt  *time.Time
}

// Repository persists principals, tenants, and credentials.
type Repository interface {
	// CreateOutfitterWithAdmin creates the tenant and its first admin user
	// in one transaction. Either both rows exist afterwards or neither does.
	CreateOutfitterWithAdmin(ctx context.Context, outfitterName, email, name, passwordHash string) (Outfitter, User, error)

	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)

	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error

	GetStaffInvite(ctx context.Context, tokenHash string) (StaffInvite, error)
	// AcceptStaffInvite marks the invite accepted and creates the guide user
	// under the invite's outfitter in one transaction. The new user's tenant
	// comes from the invite row, never from the request.
	AcceptStaffInvite(ctx context.Context, inviteID uuid.UUID, email, name, passwordHash string) (User, error)
}
