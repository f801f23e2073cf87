// Package service contains the business logic for tenant document storage.
// Uploads and downloads go through presigned URLs; the API server never
// proxies file bytes.
package service

import (
	"context"
	"fmt"

	"outfitter_backend/internal/documents/repository"
	"outfitter_backend/internal/storage"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// Config provides the settings the documents service needs.
type Config interface {
	GetMinioBucketDocuments() string
}

// UploadGrant pairs the created metadata record with the presigned PUT URL
// the client uploads to.
type UploadGrant struct {
	Document  repository.Document
	UploadURL string
}

// Service implements document business logic.
type Service struct {
	repo  repository.Repository
	store storage.ObjectStore
	cfg   Config
	log   *logger.Logger
}

// New creates a new documents service.
func New(repo repository.Repository, store storage.ObjectStore, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, cfg: cfg, log: log}
}

// List returns the caller's documents, optionally filtered.
func (s *Service) List(ctx context.Context, scope tenant.Scope, filter repository.ListFilter) ([]repository.Document, error) {
	return s.repo.List(ctx, scope, filter)
}

// RequestUpload creates the metadata record and issues a presigned upload
// URL. Object keys are prefixed with the outfitter id, so tenant objects
// live in disjoint key spaces. Linked customer and booking ids must belong
// to the caller's outfitter; a foreign id fails like a missing one.
func (s *Service) RequestUpload(ctx context.Context, scope tenant.Scope, params repository.CreateParams) (UploadGrant, error) {
	if err := s.checkLinks(ctx, scope, params.CustomerID, params.BookingID); err != nil {
		return UploadGrant{}, err
	}

	keyPrefix := fmt.Sprintf("outfitters/%s", scope.OutfitterID)
	presigned, err := s.store.PresignUpload(ctx, s.cfg.GetMinioBucketDocuments(), keyPrefix,
		params.FileName, params.ContentType, params.SizeBytes)
	if err != nil {
		return UploadGrant{}, err
	}

	params.ObjectKey = presigned.ObjectKey
	document, err := s.repo.Create(ctx, scope, params)
	if err != nil {
		return UploadGrant{}, err
	}

	return UploadGrant{Document: document, UploadURL: presigned.URL}, nil
}

func (s *Service) checkLinks(ctx context.Context, scope tenant.Scope, customerID, bookingID *uuid.UUID) error {
	if customerID != nil {
		exists, err := s.repo.CustomerExists(ctx, scope, *customerID)
		if err != nil {
			return err
		}
		if !exists {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "customer", customerID.String())
			return apperr.NotFound("customer not found")
		}
	}
	if bookingID != nil {
		exists, err := s.repo.BookingExists(ctx, scope, *bookingID)
		if err != nil {
			return err
		}
		if !exists {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "booking", bookingID.String())
			return apperr.NotFound("booking not found")
		}
	}
	return nil
}

// DownloadURL issues a presigned download URL for one of the caller's
// documents.
func (s *Service) DownloadURL(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*storage.PresignedURL, error) {
	document, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.TenantDenied(scope.UserID, scope.OutfitterID, "document", id.String())
		}
		return nil, err
	}
	if err := tenant.AssertOwned(document, scope); err != nil {
		return nil, err
	}

	return s.store.PresignDownload(ctx, s.cfg.GetMinioBucketDocuments(), document.ObjectKey)
}

// Delete removes a document record and its stored object.
func (s *Service) Delete(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	document, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := tenant.AssertOwned(document, scope); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, scope, id); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, s.cfg.GetMinioBucketDocuments(), document.ObjectKey); err != nil {
		// The record is gone; a stranded object is the lesser failure.
		s.log.Error("remove stored object", "error", err.Error(), "object_key", document.ObjectKey)
	}
	return nil
}
