package tenant

import (
	"testing"

	"outfitter_backend/platform/apperr"

	"github.com/google/uuid"
)

type ownedRow struct {
	outfitterID uuid.UUID
}

func (r ownedRow) OwnerOutfitterID() uuid.UUID { return r.outfitterID }

func validScope() Scope {
	return Scope{
		OutfitterID: uuid.New(),
		UserID:      uuid.New(),
		Role:        RoleAdmin,
	}
}

func TestAssertOwned_SameOutfitter(t *testing.T) {
	scope := validScope()
	if err := AssertOwned(ownedRow{outfitterID: scope.OutfitterID}, scope); err != nil {
		t.Fatalf("expected owned entity to pass, got %v", err)
	}
}

func TestAssertOwned_ForeignOutfitterIsNotFound(t *testing.T) {
	scope := validScope()
	err := AssertOwned(ownedRow{outfitterID: uuid.New()}, scope)
	if err == nil {
		t.Fatal("expected error for foreign-tenant entity")
	}
	// Cross-tenant access must be indistinguishable from a missing row.
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got kind %v", apperr.KindOf(err))
	}
}

func TestAssertOwned_NilEntityIsNotFound(t *testing.T) {
	if err := AssertOwned(nil, validScope()); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for nil entity, got %v", err)
	}
}

func TestAssertOwned_InvalidScopeFailsClosed(t *testing.T) {
	row := ownedRow{outfitterID: uuid.New()}

	cases := map[string]Scope{
		"zero outfitter": {UserID: uuid.New(), Role: RoleAdmin},
		"zero user":      {OutfitterID: row.outfitterID, Role: RoleAdmin},
		"unknown role":   {OutfitterID: row.outfitterID, UserID: uuid.New(), Role: Role("owner")},
		"zero scope":     {},
	}

	for name, scope := range cases {
		if err := AssertOwned(row, scope); !apperr.IsNotFound(err) {
			t.Fatalf("%s: expected NotFound, got %v", name, err)
		}
	}
}

func TestScopeValid(t *testing.T) {
	if !validScope().Valid() {
		t.Fatal("expected complete scope to be valid")
	}
	if (Scope{OutfitterID: uuid.New(), UserID: uuid.New()}).Valid() {
		t.Fatal("expected scope without role to be invalid")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleGuide.Valid() {
		t.Fatal("expected known roles to be valid")
	}
	if Role("superuser").Valid() {
		t.Fatal("expected unknown role to be invalid")
	}
}
