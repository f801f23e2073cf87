// Package service contains the business logic for location management.
package service

import (
	"context"

	"outfitter_backend/internal/locations/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Service implements location business logic.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new locations service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns the caller's locations.
func (s *Service) List(ctx context.Context, scope tenant.Scope) ([]repository.Location, error) {
	return s.repo.List(ctx, scope)
}

// Get fetches one of the caller's locations.
func (s *Service) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Location, error) {
	location, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "location", id.String())
		}
		return repository.Location{}, err
	}
	return location, nil
}

// Create adds a location to the caller's outfitter.
func (s *Service) Create(ctx context.Context, scope tenant.Scope, params repository.LocationParams) (repository.Location, error) {
	return s.repo.Create(ctx, scope, params)
}

// Update mutates one of the caller's locations after re-checking ownership.
func (s *Service) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params repository.LocationParams) (repository.Location, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return repository.Location{}, err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return repository.Location{}, err
	}
	return s.repo.Update(ctx, scope, id, params)
}

// Delete removes one of the caller's locations.
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
