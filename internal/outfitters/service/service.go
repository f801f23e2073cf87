// Package service contains the business logic for the outfitters context:
// tenant profile management, per-tenant settings, and staff administration.
package service

import (
	"context"
	"fmt"
	"time"

	"outfitter_backend/internal/auth/token"
	"outfitter_backend/internal/email"
	"outfitter_backend/internal/events"
	"outfitter_backend/internal/outfitters/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Config provides the settings the outfitters service needs.
type Config interface {
	GetInviteTokenTTL() time.Duration
	GetAppBaseURL() string
}

// Service implements the outfitters business logic.
type Service struct {
	repo   repository.Repository
	cfg    Config
	bus    events.Bus
	sender email.Sender
	log    *logger.Logger
}

// New creates a new outfitters service.
func New(repo repository.Repository, cfg Config, bus events.Bus, sender email.Sender, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, sender: sender, log: log}
}

// RegisterHandlers subscribes the service to the events it reacts to.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.OutfitterCreated{}.EventName(), events.HandlerFunc(s.handleOutfitterCreated))
}

// handleOutfitterCreated seeds the default settings row for a new tenant.
func (s *Service) handleOutfitterCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.OutfitterCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if err := s.repo.SeedDefaultSettings(ctx, created.OutfitterID); err != nil {
		return err
	}
	s.log.Info("seeded default settings", "outfitter_id", created.OutfitterID)
	return nil
}

// GetProfile returns the caller's outfitter profile.
func (s *Service) GetProfile(ctx context.Context, scope tenant.Scope) (repository.Outfitter, error) {
	return s.repo.GetOutfitter(ctx, scope)
}

// UpdateProfile updates the caller's outfitter profile.
func (s *Service) UpdateProfile(ctx context.Context, scope tenant.Scope, params repository.UpdateOutfitterParams) (repository.Outfitter, error) {
	return s.repo.UpdateOutfitter(ctx, scope, params)
}

// Disable soft-disables the caller's outfitter. Every user of the tenant is
// locked out at the next token refresh or sign-in.
func (s *Service) Disable(ctx context.Context, scope tenant.Scope) error {
	if err := s.repo.DisableOutfitter(ctx, scope); err != nil {
		return err
	}
	s.log.Info("outfitter disabled", "outfitter_id", scope.OutfitterID, "by_user", scope.UserID)
	return nil
}

// GetSettings returns the caller's tenant settings.
func (s *Service) GetSettings(ctx context.Context, scope tenant.Scope) (repository.Settings, error) {
	return s.repo.GetSettings(ctx, scope)
}

// UpdateSettings replaces the caller's tenant settings.
func (s *Service) UpdateSettings(ctx context.Context, scope tenant.Scope, params repository.SettingsParams) (repository.Settings, error) {
	return s.repo.UpdateSettings(ctx, scope, params)
}

// ListStaff returns the caller's staff members.
func (s *Service) ListStaff(ctx context.Context, scope tenant.Scope) ([]repository.StaffMember, error) {
	return s.repo.ListStaff(ctx, scope)
}

// SetStaffActive enables or disables a staff member. Admins cannot disable
// themselves; losing the last admin would orphan the tenant.
func (s *Service) SetStaffActive(ctx context.Context, scope tenant.Scope, staffID uuid.UUID, active bool) error {
	if !active && staffID == scope.UserID {
		return apperr.Validation("cannot disable your own account")
	}

	member, err := s.repo.GetStaffMember(ctx, scope, staffID)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "staff", staffID.String())
		}
		return err
	}
	if err := tenant.AssertOwned(member, scope); err != nil {
		return err
	}

	return s.repo.SetStaffActive(ctx, scope, staffID, active)
}

// InviteStaff creates a staff invite, emails the invite link, and publishes
// the invited event. Only the token hash is stored; the plaintext token
// leaves the process solely inside the email.
func (s *Service) InviteStaff(ctx context.Context, scope tenant.Scope, inviteEmail, role string) (repository.StaffInvite, error) {
	if role != string(tenant.RoleGuide) && role != string(tenant.RoleAdmin) {
		return repository.StaffInvite{}, apperr.Validation("unknown role")
	}

	plainToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return repository.StaffInvite{}, fmt.Errorf("generate invite token: %w", err)
	}
	expiresAt := time.Now().Add(s.cfg.GetInviteTokenTTL())

	invite, err := s.repo.CreateStaffInvite(ctx, scope, inviteEmail, role, token.HashSHA256(plainToken), expiresAt)
	if err != nil {
		return repository.StaffInvite{}, err
	}

	outfitter, err := s.repo.GetOutfitter(ctx, scope)
	if err != nil {
		return repository.StaffInvite{}, err
	}

	inviteURL := fmt.Sprintf("%s/invites/accept?token=%s", s.cfg.GetAppBaseURL(), plainToken)
	if err := s.sender.SendStaffInviteEmail(ctx, invite.Email, outfitter.Name, inviteURL); err != nil {
		// The invite row exists and can be re-sent; delivery failure is not fatal.
		s.log.Error("staff invite email failed", "error", err.Error(), "invite_id", invite.ID)
	}

	s.bus.Publish(ctx, events.StaffInvited{
		BaseEvent:     events.NewBaseEvent(),
		OutfitterID:   scope.OutfitterID,
		OutfitterName: outfitter.Name,
		Email:         invite.Email,
		InviteToken:   plainToken,
		InvitedByID:   scope.UserID,
	})

	return invite, nil
}

// ListInvites returns the caller's pending staff invites.
func (s *Service) ListInvites(ctx context.Context, scope tenant.Scope) ([]repository.StaffInvite, error) {
	return s.repo.ListStaffInvites(ctx, scope)
}
