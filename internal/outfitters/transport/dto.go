// Package transport defines request and response DTOs for the outfitters
// module. No request carries an outfitter id; the tenant always comes from
// the authenticated scope.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest updates the tenant profile.
type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Website      string `json:"website" validate:"omitempty,url,max=255"`
}

// UpdateSettingsRequest replaces the tenant settings.
type UpdateSettingsRequest struct {
	Timezone            string `json:"timezone" validate:"required,max=64"`
	Currency            string `json:"currency" validate:"required,len=3"`
	BookingLeadTimeHrs  int    `json:"bookingLeadTimeHours" validate:"min=0,max=720"`
	ReminderHoursBefore int    `json:"reminderHoursBefore" validate:"min=1,max=168"`
}

// InviteStaffRequest invites a new staff member by email.
type InviteStaffRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin guide"`
}

// SetStaffActiveRequest toggles a staff member's active flag.
type SetStaffActiveRequest struct {
	Active bool `json:"active"`
}

// OutfitterResponse is the tenant profile representation.
type OutfitterResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone"`
	Website      string    `json:"website"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SettingsResponse is the tenant settings representation.
type SettingsResponse struct {
	Timezone            string    `json:"timezone"`
	Currency            string    `json:"currency"`
	BookingLeadTimeHrs  int       `json:"bookingLeadTimeHours"`
	ReminderHoursBefore int       `json:"reminderHoursBefore"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// StaffMemberResponse is one staff member in the listing.
type StaffMemberResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffInviteResponse is one pending invite.
type StaffInviteResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
