// Package tenant defines the per-request tenant scope and the ownership
// guard that together enforce outfitter data isolation.
//
// A Scope is built once per request from the authenticated principal and
// passed explicitly down the call chain (handler → service → repository).
// It is never stored in package-level state, so concurrent requests from
// different outfitters cannot observe each other's scope.
package tenant

import (
	"outfitter_backend/platform/apperr"

	"github.com/google/uuid"
)

// Role is the principal's role within its outfitter.
type Role string

const (
	// RoleAdmin may perform every tenant-scoped operation.
	RoleAdmin Role = "admin"
	// RoleGuide may read tenant data and manage its own assignments.
	RoleGuide Role = "guide"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleGuide
}

// Scope is the authenticated principal's tenant binding for one request.
// Immutable after construction.
type Scope struct {
	OutfitterID uuid.UUID
	UserID      uuid.UUID
	Role        Role
}

// IsAdmin reports whether the principal holds the admin role.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Valid reports whether the scope carries a resolvable tenant and principal.
// A zero OutfitterID means tenant resolution failed; such a scope must never
// reach the data-access layer.
func (s Scope) Valid() bool {
	return s.OutfitterID != uuid.Nil && s.UserID != uuid.Nil && s.Role.Valid()
}

// systemUserID identifies background jobs in audit trails and scopes.
var systemUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// SystemScope returns a scope for background jobs acting within one
// tenant. The outfitter id must come from trusted job state, never from
// request input.
func SystemScope(outfitterID uuid.UUID) Scope {
	return Scope{OutfitterID: outfitterID, UserID: systemUserID, Role: RoleAdmin}
}

// Owned is implemented by every tenant-scoped entity.
type Owned interface {
	// OwnerOutfitterID returns the id of the outfitter the entity belongs to.
	OwnerOutfitterID() uuid.UUID
}

// AssertOwned verifies a fetched entity belongs to the scope's outfitter.
//
// It is the last line of defense behind the query-level outfitter filter:
// call it after fetch and before mutation, on the freshly loaded row, never
// on a cached copy. A mismatch returns NotFound, not an authorization error,
// so foreign-tenant ids are indistinguishable from nonexistent ones.
func AssertOwned(entity Owned, scope Scope) error {
	if entity == nil {
		return apperr.NotFound("not found")
	}
	if !scope.Valid() || entity.OwnerOutfitterID() != scope.OutfitterID {
		return apperr.NotFound("not found")
	}
	return nil
}
