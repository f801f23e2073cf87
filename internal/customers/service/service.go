// Package service contains the business logic for customer management.
package service

import (
	"context"

	"outfitter_backend/internal/customers/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/phone"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// Service implements customer business logic.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new customers service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns one page of the caller's customers.
func (s *Service) List(ctx context.Context, scope tenant.Scope, params repository.ListParams) (repository.Page, error) {
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return s.repo.List(ctx, scope, params)
}

// Get fetches one of the caller's customers.
func (s *Service) Get(ctx context.Context, scope tenant.Scope, id uuid.UUID) (repository.Customer, error) {
	customer, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "customer", id.String())
		}
		return repository.Customer{}, err
	}
	return customer, nil
}

// Create adds a customer to the caller's outfitter. The owner comes from
// the scope; nothing in params can influence it.
func (s *Service) Create(ctx context.Context, scope tenant.Scope, params repository.CustomerParams) (repository.Customer, error) {
	params.Phone = phone.NormalizeE164(params.Phone)
	return s.repo.Create(ctx, scope, params)
}

// Update mutates one of the caller's customers. The row is re-fetched and
// ownership re-checked before the write.
func (s *Service) Update(ctx context.Context, scope tenant.Scope, id uuid.UUID, params repository.CustomerParams) (repository.Customer, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return repository.Customer{}, err
	}
	if err := tenant.AssertOwned(existing, scope); err != nil {
		return repository.Customer{}, err
	}

	params.Phone = phone.NormalizeE164(params.Phone)
	return s.repo.Update(ctx, scope, id, params)
}

// Delete removes one of the caller's customers. A second delete of the same
// id reports NotFound like any other missing row.
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
