package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/config"
)

// allowedContentTypes lists the MIME types accepted for tenant documents:
// licenses, waivers, permits, and trip photos.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,

	"application/pdf": true,
	"text/plain":      true,
	"text/csv":        true,
}

// MinIOStore implements ObjectStore with MinIO.
type MinIOStore struct {
	client      *minio.Client
	maxFileSize int64
}

// NewMinIOStore creates a MinIO-backed object store.
func NewMinIOStore(cfg config.StorageConfig) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOStore{client: client, maxFileSize: cfg.GetMinIOMaxFileSize()}, nil
}

var _ ObjectStore = (*MinIOStore)(nil)

// EnsureBucket creates the bucket if it does not exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// PresignUpload validates the upload and issues a presigned PUT URL.
func (s *MinIOStore) PresignUpload(ctx context.Context, bucket, keyPrefix, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if err := s.validateContentType(contentType); err != nil {
		return nil, err
	}
	if err := s.validateSize(sizeBytes); err != nil {
		return nil, err
	}

	// Random suffix so repeated uploads of the same file name never clash.
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(path.Base(fileName), ext)
	objectKey := fmt.Sprintf("%s/%s_%s%s", strings.TrimSuffix(keyPrefix, "/"), base, uuid.New().String()[:8], ext)

	expiresAt := time.Now().Add(PresignedURLTTL)
	presigned, err := s.client.PresignedPutObject(ctx, bucket, objectKey, PresignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &PresignedURL{URL: presigned.String(), ObjectKey: objectKey, ExpiresAt: expiresAt}, nil
}

// PresignDownload issues a presigned GET URL for an existing object.
func (s *MinIOStore) PresignDownload(ctx context.Context, bucket, objectKey string) (*PresignedURL, error) {
	expiresAt := time.Now().Add(PresignedURLTTL)
	presigned, err := s.client.PresignedGetObject(ctx, bucket, objectKey, PresignedURLTTL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &PresignedURL{URL: presigned.String(), ObjectKey: objectKey, ExpiresAt: expiresAt}, nil
}

// Remove deletes an object.
func (s *MinIOStore) Remove(ctx context.Context, bucket, objectKey string) error {
	if err := s.client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}
	return nil
}

func (s *MinIOStore) validateContentType(contentType string) error {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if !allowedContentTypes[normalized] {
		return apperr.Validation(fmt.Sprintf("content type %q is not allowed", contentType))
	}
	return nil
}

func (s *MinIOStore) validateSize(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return apperr.Validation("file size must be greater than zero")
	}
	if sizeBytes > s.maxFileSize {
		return apperr.Validation(fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}
	return nil
}
