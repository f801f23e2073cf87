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
	"outfitter_backend/platform/tenant"
)

const uniqueViolationCode = "23505"

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new outfitters repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetOutfitter loads the scope's own outfitter row.
func (r *Repo) GetOutfitter(ctx context.Context, scope tenant.Scope) (Outfitter, error) {
	var o Outfitter
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, contact_email, phone, website, active, created_at, updated_at
		FROM outfitters
		WHERE id = $1`, scope.OutfitterID,
	).Scan(&o.ID, &o.Name, &o.ContactEmail, &o.Phone, &o.Website, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outfitter{}, apperr.NotFound("outfitter not found")
		}
		return Outfitter{}, fmt.Errorf("get outfitter: %w", err)
	}
	return o, nil
}

// UpdateOutfitter updates the scope's own outfitter profile.
func (r *Repo) UpdateOutfitter(ctx context.Context, scope tenant.Scope, params UpdateOutfitterParams) (Outfitter, error) {
	var o Outfitter
	err := r.pool.QueryRow(ctx, `
		UPDATE outfitters
		SET name = $2, contact_email = $3, phone = $4, website = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, name, contact_email, phone, website, active, created_at, updated_at`,
		scope.OutfitterID, params.Name, params.ContactEmail, params.Phone, params.Website,
	).Scan(&o.ID, &o.Name, &o.ContactEmail, &o.Phone, &o.Website, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outfitter{}, apperr.NotFound("outfitter not found")
		}
		return Outfitter{}, fmt.Errorf("update outfitter: %w", err)
	}
	return o, nil
}

// DisableOutfitter soft-disables the tenant. Sign-in rejects users of a
// disabled outfitter, so this locks the whole tenant out without deleting
// any data.
func (r *Repo) DisableOutfitter(ctx context.Context, scope tenant.Scope) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE outfitters
		SET active = false, updated_at = now()
		WHERE id = $1`, scope.OutfitterID)
	if err != nil {
		return fmt.Errorf("disable outfitter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("outfitter not found")
	}
	return nil
}

// GetSettings loads the scope's settings row.
func (r *Repo) GetSettings(ctx context.Context, scope tenant.Scope) (Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx, `
		SELECT outfitter_id, timezone, currency, booking_lead_time_hours, reminder_hours_before,
		       created_at, updated_at
		FROM outfitter_settings
		WHERE outfitter_id = $1`, scope.OutfitterID,
	).Scan(&s.OutfitterID, &s.Timezone, &s.Currency, &s.BookingLeadTimeHrs, &s.ReminderHoursBefore,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Settings{}, apperr.NotFound("settings not found")
		}
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// UpdateSettings replaces the scope's settings row.
func (r *Repo) UpdateSettings(ctx context.Context, scope tenant.Scope, params SettingsParams) (Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx, `
		UPDATE outfitter_settings
		SET timezone = $2, currency = $3, booking_lead_time_hours = $4,
		    reminder_hours_before = $5, updated_at = now()
		WHERE outfitter_id = $1
		RETURNING outfitter_id, timezone, currency, booking_lead_time_hours, reminder_hours_before,
		          created_at, updated_at`,
		scope.OutfitterID, params.Timezone, params.Currency, params.BookingLeadTimeHrs, params.ReminderHoursBefore,
	).Scan(&s.OutfitterID, &s.Timezone, &s.Currency, &s.BookingLeadTimeHrs, &s.ReminderHoursBefore,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Settings{}, apperr.NotFound("settings not found")
		}
		return Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return s, nil
}

// SeedDefaultSettings inserts the default settings row at onboarding.
// Idempotent so a replayed event cannot fail the handler.
func (r *Repo) SeedDefaultSettings(ctx context.Context, outfitterID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO outfitter_settings (outfitter_id)
		VALUES ($1)
		ON CONFLICT (outfitter_id) DO NOTHING`, outfitterID)
	if err != nil {
		return fmt.Errorf("seed default settings: %w", err)
	}
	return nil
}

const selectStaffColumns = `
	SELECT id, outfitter_id, email, name, role, active, created_at
	FROM users`

// ListStaff returns the scope's staff, newest first.
func (r *Repo) ListStaff(ctx context.Context, scope tenant.Scope) ([]StaffMember, error) {
	rows, err := r.pool.Query(ctx, selectStaffColumns+`
		WHERE outfitter_id = $1
		ORDER BY created_at DESC`, scope.OutfitterID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	staff := []StaffMember{}
	for rows.Next() {
		var m StaffMember
		if err := rows.Scan(&m.ID, &m.OutfitterID, &m.Email, &m.Name, &m.Role, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		staff = append(staff, m)
	}
	return staff, rows.Err()
}

// GetStaffMember fetches one staff member within the scope's outfitter.
func (r *Repo) GetStaffMember(ctx context.Context, scope tenant.Scope, id uuid.UUID) (StaffMember, error) {
	var m StaffMember
	err := r.pool.QueryRow(ctx, selectStaffColumns+`
		WHERE id = $2 AND outfitter_id = $1`, scope.OutfitterID, id,
	).Scan(&m.ID, &m.OutfitterID, &m.Email, &m.Name, &m.Role, &m.Active, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StaffMember{}, apperr.NotFound("staff member not found")
		}
		return StaffMember{}, fmt.Errorf("get staff member: %w", err)
	}
	return m, nil
}

// SetStaffActive toggles a staff member's active flag within the scope's
// outfitter. A foreign id matches zero rows and reports NotFound.
func (r *Repo) SetStaffActive(ctx context.Context, scope tenant.Scope, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET active = $3, updated_at = now()
		WHERE id = $2 AND outfitter_id = $1`, scope.OutfitterID, id, active)
	if err != nil {
		return fmt.Errorf("set staff active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("staff member not found")
	}
	return nil
}

// CreateStaffInvite stores a hashed invite token. The outfitter id comes
// from the scope, never from the request body.
func (r *Repo) CreateStaffInvite(ctx context.Context, scope tenant.Scope, email, role, tokenHash string, expiresAt time.Time) (StaffInvite, error) {
	var inv StaffInvite
	err := r.pool.QueryRow(ctx, `
		INSERT INTO staff_invites (outfitter_id, email, role, token_hash, invited_by, expires_at)
		VALUES ($1, lower($2), $3, $4, $5, $6)
		RETURNING id, outfitter_id, email, role, invited_by, expires_at, accepted_at, created_at`,
		scope.OutfitterID, email, role, tokenHash, scope.UserID, expiresAt,
	).Scan(&inv.ID, &inv.OutfitterID, &inv.Email, &inv.Role, &inv.InvitedByID,
		&inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return StaffInvite{}, apperr.Conflict("invite already pending for this email")
		}
		return StaffInvite{}, fmt.Errorf("create staff invite: %w", err)
	}
	return inv, nil
}

// ListStaffInvites returns the scope's pending invites, newest first.
func (r *Repo) ListStaffInvites(ctx context.Context, scope tenant.Scope) ([]StaffInvite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, outfitter_id, email, role, invited_by, expires_at, accepted_at, created_at
		FROM staff_invites
		WHERE outfitter_id = $1 AND accepted_at IS NULL AND expires_at > now()
		ORDER BY created_at DESC`, scope.OutfitterID)
	if err != nil {
		return nil, fmt.Errorf("list staff invites: %w", err)
	}
	defer rows.Close()

	invites := []StaffInvite{}
	for rows.Next() {
		var inv StaffInvite
		if err := rows.Scan(&inv.ID, &inv.OutfitterID, &inv.Email, &inv.Role, &inv.InvitedByID,
			&inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staff invite: %w", err)
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
