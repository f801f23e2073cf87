// Package transport defines request and response DTOs for customers.
//
// Request DTOs carry no outfitter id field. A client that sends one anyway
// has it dropped during binding, so the owning tenant is always the
// authenticated scope's.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CustomerRequest creates or replaces a customer.
type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=80"`
	LastName  string `json:"lastName" validate:"required,min=1,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Notes     string `json:"notes" validate:"omitempty,max=4000"`
}

// CustomerResponse is one customer.
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	OutfitterID uuid.UUID `json:"outfitterId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerListResponse is one page of customers.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
