package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfitter_backend/platform/apperr"
)

const uniqueViolationCode = "23505"

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const selectUserColumns = `
	SELECT u.id, u.outfitter_id, u.email, u.name, u.password_hash, u.role, u.active,
	       o.active, o.name
	FROM users u
	JOIN outfitters o ON o.id = u.outfitter_id`

// CreateOutfitterWithAdmin creates the tenant and its first admin user in one transaction.
func (r *Repo) CreateOutfitterWithAdmin(ctx context.Context, outfitterName, email, name, passwordHash string) (Outfitter, User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Outfitter{}, User{}, fmt.Errorf("begin onboarding tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var outfitter Outfitter
	err = tx.QueryRow(ctx, `
		INSERT INTO outfitters (name)
		VALUES ($1)
		RETURNING id, name, active`, outfitterName,
	).Scan(&outfitter.ID, &outfitter.Name, &outfitter.Active)
	if err != nil {
		return Outfitter{}, User{}, fmt.Errorf("create outfitter: %w", err)
	}

	var user User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (outfitter_id, email, name, password_hash, role)
		VALUES ($1, lower($2), $3, $4, 'admin')
		RETURNING id, outfitter_id, email, name, password_hash, role, active`,
		outfitter.ID, email, name, passwordHash,
	).Scan(&user.ID, &user.OutfitterID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return Outfitter{}, User{}, apperr.Conflict("email already registered")
		}
		return Outfitter{}, User{}, fmt.Errorf("create admin user: %w", err)
	}
	user.OutfitterActive = outfitter.Active
	user.OutfitterName = outfitter.Name

	if err := tx.Commit(ctx); err != nil {
		return Outfitter{}, User{}, fmt.Errorf("commit onboarding tx: %w", err)
	}

	return outfitter, user, nil
}

// GetUserByEmail fetches a user (and its outfitter's active flag) by email.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, selectUserColumns+` WHERE u.email = lower($1)`, email).Scan(
		&u.ID, &u.OutfitterID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Active,
		&u.OutfitterActive, &u.OutfitterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID fetches a user by id.
func (r *Repo) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, selectUserColumns+` WHERE u.id = $1`, id).Scan(
		&u.ID, &u.OutfitterID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Active,
		&u.OutfitterActive, &u.OutfitterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// StoreRefreshToken persists a hashed refresh token.
func (r *Repo) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)`, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken fetches a stored refresh token by its hash.
func (r *Repo) GetRefreshToken(ctx context.Context, tokenHash string) (RefreshToken, error) {
	var t RefreshToken
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1`, tokenHash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RefreshToken{}, apperr.Unauthenticated("invalid refresh token")
		}
		return RefreshToken{}, fmt.Errorf("get refresh token: %w", err)
	}
	return t, nil
}

// RevokeRefreshToken marks a refresh token revoked.
func (r *Repo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// GetStaffInvite fetches a pending invite by token hash.
func (r *Repo) GetStaffInvite(ctx context.Context, tokenHash string) (StaffInvite, error) {
	var inv StaffInvite
	err := r.pool.QueryRow(ctx, `
		SELECT id, outfitter_id, email, token_hash, expires_at, accepted_at
		FROM staff_invites
		WHERE token_hash = $1`, tokenHash,
	).Scan(&inv.ID, &inv.OutfitterID, &inv.Email, &inv.TokenHash, &inv.ExpiresAt, &inv.AcceptedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StaffInvite{}, apperr.NotFound("invite not found")
		}
		return StaffInvite{}, fmt.Errorf("get staff invite: %w", err)
	}
	return inv, nil
}

// AcceptStaffInvite consumes an invite and creates the guide user in one transaction.
func (r *Repo) AcceptStaffInvite(ctx context.Context, inviteID uuid.UUID, email, name, passwordHash string) (User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return User{}, fmt.Errorf("begin invite tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var outfitterID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE staff_invites SET accepted_at = now()
		WHERE id = $1 AND accepted_at IS NULL AND expires_at > now()
		RETURNING outfitter_id`, inviteID,
	).Scan(&outfitterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("invite not found")
		}
		return User{}, fmt.Errorf("consume staff invite: %w", err)
	}

	var user User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (outfitter_id, email, name, password_hash, role)
		VALUES ($1, lower($2), $3, $4, 'guide')
		RETURNING id, outfitter_id, email, name, password_hash, role, active`,
		outfitterID, email, name, passwordHash,
	).Scan(&user.ID, &user.OutfitterID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("create guide user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, fmt.Errorf("commit invite tx: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
