// Package transport defines request and response DTOs for locations.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// LocationRequest creates or replaces a location.
type LocationRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" validate:"omitempty,max=4000"`
	Address     string   `json:"address" validate:"omitempty,max=255"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// LocationResponse is one location.
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	OutfitterID uuid.UUID `json:"outfitterId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
