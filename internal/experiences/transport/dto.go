// Package transport defines request and response DTOs for experiences.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceRequest creates or replaces an experience.
type ExperienceRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=160"`
	Description   string     `json:"description" validate:"omitempty,max=8000"`
	PriceCents    int64      `json:"priceCents" validate:"min=0"`
	DurationHours int        `json:"durationHours" validate:"min=1,max=720"`
	Capacity      int        `json:"capacity" validate:"min=1,max=500"`
	LocationID    *uuid.UUID `json:"locationId"`
	Active        bool       `json:"active"`
}

// ExperienceResponse is one experience.
type ExperienceResponse struct {
	ID            uuid.UUID  `json:"id"`
	OutfitterID   uuid.UUID  `json:"outfitterId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	PriceCents    int64      `json:"priceCents"`
	DurationHours int        `json:"durationHours"`
	Capacity      int        `json:"capacity"`
	LocationID    *uuid.UUID `json:"locationId"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
