// Package service contains the business logic for experience management.
package service

import (
	"context"

	"outfitter_backend/internal/experiences/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Service implements experience business logic.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new experiences service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns the caller's experiences.
func (s *Service) List(ctx context.Context, scope tenant.Scope) ([]repository.Experience, error) {
	return s.repo.List(ctx, scope)
}

// Get fetches one of the caller's experiences.
func (s *Service) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Experience, error) {
	experience, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "experience", id.String())
		}
		return repository.Experience{}, err
	}
	return experience, nil
}

// Create adds an experience. A linked location must belong to the caller's
// outfitter; a foreign location id fails like a missing one.
func (s *Service) Create(ctx context.Context, scope tenant.Scope, params repository.ExperienceParams) (repository.Experience, error) {
	if err := s.checkLocation(ctx, scope, params.LocationID); err != nil {
		return repository.Experience{}, err
	}
	return s.repo.Create(ctx, scope, params)
}

// Update mutates one of the caller's experiences after re-checking ownership.
func (s *Service) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params repository.ExperienceParams) (repository.Experience, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return repository.Experience{}, err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return repository.Experience{}, err
	}
	if err := s.checkLocation(ctx, scope, params.LocationID); err != nil {
		return repository.Experience{}, err
	}
	return s.repo.Update(ctx, scope, id, params)
}

// Delete removes one of the caller's experiences.
func (s *Service) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return err
	}
	return s.repo.Delete(ctx, scope, id)
}

func (s *Service) checkLocation(ctx context.Context, scope tenant.Scope, locationID *uuid.UUID) error {
	if locationID == nil {
		return nil
	}
	exists, err := s.repo.LocationExists(ctx, scope, *locationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("location not found")
	}
	return nil
}
