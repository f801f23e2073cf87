package service

import (
	"context"
	"testing"

	"outfitter_backend/internal/customers/repository"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// fakeRepo stores customers in memory with the same tenant semantics as the
// SQL implementation: every operation filters by the scope's outfitter and
// Create stamps the owner from the scope.
type fakeRepo struct {
	customers map[uuid.UUID]repository.Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[uuid.UUID]repository.Customer)}
}

func (f *fakeRepo) List(_ context.Context, scope tenant.Scope, _ repository.ListParams) (repository.Page, error) {
	page := repository.Page{Customers: []repository.Customer{}}
	for _, c := range f.customers {
		if c.OutfitterID == scope.OutfitterID {
			page.Customers = append(page.Customers, c)
		}
	}
	page.Total = len(page.Customers)
	return page, nil
}

func (f *fakeRepo) Get(_ context.Context, scope tenant.Scope, id uuid.UUID) (repository.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.OutfitterID != scope.OutfitterID {
		return repository.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, scope tenant.Scope, params repository.CustomerParams) (repository.Customer, error) {
	c := repository.Customer{
		ID:          uuid.New(),
		OutfitterID: scope.OutfitterID,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		Notes:       params.Notes,
	}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, scope tenant.Scope, id uuid.UUID, params repository.CustomerParams) (repository.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.OutfitterID != scope.OutfitterID {
		return repository.Customer{}, apperr.NotFound("customer not found")
	}
	c.FirstName, c.LastName, c.Email, c.Phone, c.Notes = params.FirstName, params.LastName, params.Email, params.Phone, params.Notes
	f.customers[id] = c
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, scope tenant.Scope, id uuid.UUID) error {
	c, ok := f.customers[id]
	if !ok || c.OutfitterID != scope.OutfitterID {
		return apperr.NotFound("customer not found")
	}
	delete(f.customers, id)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func testScope() tenant.Scope {
	return tenant.Scope{OutfitterID: uuid.New(), UserID: uuid.New(), Role: tenant.RoleAdmin}
}

func TestCreate_OwnerComesFromScope(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))
	scope := testScope()

	created, err := svc.Create(context.Background(), scope, repository.CustomerParams{
		FirstName: "Annie",
		LastName:  "Oakley",
		Email:     "annie@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.OutfitterID != scope.OutfitterID {
		t.Fatalf("customer owner = %s, want scope outfitter %s", created.OutfitterID, scope.OutfitterID)
	}
}

func TestCreate_NormalizesPhone(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))

	created, err := svc.Create(context.Background(), testScope(), repository.CustomerParams{
		FirstName: "Annie",
		LastName:  "Oakley",
		Email:     "annie@example.com",
		Phone:     "(406) 555-0123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Phone != "+14065550123" {
		t.Fatalf("phone = %q, want E.164 +14065550123", created.Phone)
	}
}

func TestGet_ForeignTenantLooksLikeMissing(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))

	owner := testScope()
	created, err := svc.Create(context.Background(), owner, repository.CustomerParams{
		FirstName: "Annie", LastName: "Oakley", Email: "annie@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	intruder := testScope()
	_, errForeign := svc.Get(context.Background(), intruder, created.ID)
	_, errMissing := svc.Get(context.Background(), owner, uuid.New())

	if apperr.KindOf(errForeign) != apperr.KindNotFound {
		t.Fatalf("foreign-tenant get: want NotFound, got %v", errForeign)
	}
	// The two failure modes must be indistinguishable.
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("foreign get (%v) must look like missing get (%v)", errForeign, errMissing)
	}
}

func TestUpdate_ForeignTenantIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))

	owner := testScope()
	created, err := svc.Create(context.Background(), owner, repository.CustomerParams{
		FirstName: "Annie", LastName: "Oakley", Email: "annie@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), testScope(), created.ID, repository.CustomerParams{
		FirstName: "Mallory", LastName: "Intruder", Email: "mallory@example.com",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want NotFound, got %v", err)
	}

	// The row is untouched.
	got, err := svc.Get(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("get after failed foreign update: %v", err)
	}
	if got.FirstName != "Annie" {
		t.Fatalf("foreign update mutated the row: %+v", got)
	}
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))
	scope := testScope()

	created, err := svc.Create(context.Background(), scope, repository.CustomerParams{
		FirstName: "Annie", LastName: "Oakley", Email: "annie@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), scope, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err = svc.Delete(context.Background(), scope, created.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete: want NotFound, got %v", err)
	}
}

func TestList_SeesOnlyOwnTenant(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))

	scopeA := testScope()
	scopeB := testScope()

	if _, err := svc.Create(context.Background(), scopeA, repository.CustomerParams{
		FirstName: "Alice", LastName: "Angler", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("create for tenant A: %v", err)
	}
	if _, err := svc.Create(context.Background(), scopeB, repository.CustomerParams{
		FirstName: "Bob", LastName: "Bowhunter", Email: "bob@example.com",
	}); err != nil {
		t.Fatalf("create for tenant B: %v", err)
	}

	pageA, err := svc.List(context.Background(), scopeA, repository.ListParams{})
	if err != nil {
		t.Fatalf("list tenant A: %v", err)
	}
	if pageA.Total != 1 || pageA.Customers[0].FirstName != "Alice" {
		t.Fatalf("tenant A sees %+v, want only its own customer", pageA)
	}
}
