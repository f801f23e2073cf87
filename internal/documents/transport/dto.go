// Package transport defines request and response DTOs for documents.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// UploadRequest asks for a presigned upload slot.
type UploadRequest struct {
	FileName    string     `json:"fileName" validate:"required,max=255"`
	ContentType string     `json:"contentType" validate:"required,max=128"`
	SizeBytes   int64      `json:"sizeBytes" validate:"min=1"`
	CustomerID  *uuid.UUID `json:"customerId"`
	BookingID   *uuid.UUID `json:"bookingId"`
}

// DocumentResponse is one document's metadata.
type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	OutfitterID uuid.UUID  `json:"outfitterId"`
	CustomerID  *uuid.UUID `json:"customerId"`
	BookingID   *uuid.UUID `json:"bookingId"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	SizeBytes   int64      `json:"sizeBytes"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UploadResponse is the created record plus the presigned PUT URL.
type UploadResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
}

// DownloadResponse carries a presigned GET URL.
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
