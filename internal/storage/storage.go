// Package storage provides S3-compatible object storage for tenant
// documents. Clients never stream bytes through the API server; they get
// short-lived presigned URLs and talk to the object store directly.
package storage

import (
	"context"
	"time"
)

// PresignedURLTTL bounds how long an issued upload or download URL works.
const PresignedURLTTL = 15 * time.Minute

// PresignedURL is an issued presigned operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ObjectStore issues presigned operations against a bucket. Keys are built
// by the caller; the documents module prefixes every key with the owning
// outfitter id so tenants can never collide.
type ObjectStore interface {
	// PresignUpload issues a PUT URL for a new object under keyPrefix. The
	// returned key includes a random suffix so uploads cannot overwrite
	// each other.
	PresignUpload(ctx context.Context, bucket, keyPrefix, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// PresignDownload issues a GET URL for an existing object.
	PresignDownload(ctx context.Context, bucket, objectKey string) (*PresignedURL, error)

	// Remove deletes an object.
	Remove(ctx context.Context, bucket, objectKey string) error

	// EnsureBucket creates the bucket if it does not exist.
	EnsureBucket(ctx context.Context, bucket string) error
}
