package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"outfitter_backend/internal/documents/repository"
	"outfitter_backend/internal/storage"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"
	"outfitter_backend/platform/tenant"

	"github.com/google/uuid"
)

// fakeRepo stores document metadata in memory with the same tenant
// semantics as the SQL implementation: every operation filters by the
// scope's outfitter, Create stamps the owner from the scope, and the
// existence checks see only the scope's customers and bookings.
type fakeRepo struct {
	documents map[uuid.UUID]repository.Document
	customers map[uuid.UUID]uuid.UUID // customer id -> owning outfitter
	bookings  map[uuid.UUID]uuid.UUID // booking id -> owning outfitter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		documents: make(map[uuid.UUID]repository.Document),
		customers: make(map[uuid.UUID]uuid.UUID),
		bookings:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeRepo) List(_ context.Context, scope tenant.Scope, _ repository.ListFilter) ([]repository.Document, error) {
	out := []repository.Document{}
	for _, d := range f.documents {
		if d.OutfitterID == scope.OutfitterID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, scope tenant.Scope, id uuid.UUID) (repository.Document, error) {
	d, ok := f.documents[id]
	if !ok || d.OutfitterID != scope.OutfitterID {
		return repository.Document{}, apperr.NotFound("document not found")
	}
	return d, nil
}

func (f *fakeRepo) Create(_ context.Context, scope tenant.Scope, params repository.CreateParams) (repository.Document, error) {
	d := repository.Document{
		ID:          uuid.New(),
		OutfitterID: scope.OutfitterID,
		CustomerID:  params.CustomerID,
		BookingID:   params.BookingID,
		FileName:    params.FileName,
		ContentType: params.ContentType,
		SizeBytes:   params.SizeBytes,
		ObjectKey:   params.ObjectKey,
		UploadedBy:  scope.UserID,
	}
	f.documents[d.ID] = d
	return d, nil
}

func (f *fakeRepo) Delete(_ context.Context, scope tenant.Scope, id uuid.UUID) error {
	d, ok := f.documents[id]
	if !ok || d.OutfitterID != scope.OutfitterID {
		return apperr.NotFound("document not found")
	}
	delete(f.documents, id)
	return nil
}

func (f *fakeRepo) CustomerExists(_ context.Context, scope tenant.Scope, customerID uuid.UUID) (bool, error) {
	owner, ok := f.customers[customerID]
	return ok && owner == scope.OutfitterID, nil
}

func (f *fakeRepo) BookingExists(_ context.Context, scope tenant.Scope, bookingID uuid.UUID) (bool, error) {
	owner, ok := f.bookings[bookingID]
	return ok && owner == scope.OutfitterID, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

// fakeStore records presign and remove calls instead of talking to MinIO.
type fakeStore struct {
	presignedUploads int
	removedKeys      []string
}

func (f *fakeStore) PresignUpload(_ context.Context, _, keyPrefix, fileName, _ string, _ int64) (*storage.PresignedURL, error) {
	f.presignedUploads++
	key := fmt.Sprintf("%s/%s", keyPrefix, fileName)
	return &storage.PresignedURL{
		URL:       "https://minio.test/upload/" + key,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(storage.PresignedURLTTL),
	}, nil
}

func (f *fakeStore) PresignDownload(_ context.Context, _, objectKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{
		URL:       "https://minio.test/download/" + objectKey,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().Add(storage.PresignedURLTTL),
	}, nil
}

func (f *fakeStore) Remove(_ context.Context, _, objectKey string) error {
	f.removedKeys = append(f.removedKeys, objectKey)
	return nil
}

func (f *fakeStore) EnsureBucket(context.Context, string) error { return nil }

var _ storage.ObjectStore = (*fakeStore)(nil)

type testConfig struct{}

func (testConfig) GetMinioBucketDocuments() string { return "outfitter-documents" }

func testScope() tenant.Scope {
	return tenant.Scope{OutfitterID: uuid.New(), UserID: uuid.New(), Role: tenant.RoleAdmin}
}

func newTestService(repo *fakeRepo, store *fakeStore) *Service {
	return New(repo, store, testConfig{}, logger.New("development"))
}

func TestRequestUpload_KeyPrefixedWithOutfitter(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newTestService(repo, store)
	scope := testScope()

	grant, err := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		FileName:    "waiver.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	wantPrefix := fmt.Sprintf("outfitters/%s/", scope.OutfitterID)
	if !strings.HasPrefix(grant.Document.ObjectKey, wantPrefix) {
		t.Fatalf("object key = %q, want prefix %q", grant.Document.ObjectKey, wantPrefix)
	}
	if grant.Document.OutfitterID != scope.OutfitterID {
		t.Fatalf("document owner = %s, want %s", grant.Document.OutfitterID, scope.OutfitterID)
	}
	if grant.UploadURL == "" {
		t.Fatal("expected an upload URL")
	}
}

func TestRequestUpload_ForeignCustomerIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newTestService(repo, store)
	scope := testScope()

	foreignCustomer := uuid.New()
	repo.customers[foreignCustomer] = uuid.New() // another outfitter's customer

	_, err := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		CustomerID:  &foreignCustomer,
		FileName:    "license.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
	if len(repo.documents) != 0 {
		t.Fatalf("document record persisted for a foreign customer link")
	}
	if store.presignedUploads != 0 {
		t.Fatalf("upload URL issued for a foreign customer link")
	}
}

func TestRequestUpload_ForeignBookingIndistinguishableFromMissing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeStore{})
	scope := testScope()

	foreignBooking := uuid.New()
	repo.bookings[foreignBooking] = uuid.New()
	missingBooking := uuid.New()

	_, errForeign := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		BookingID: &foreignBooking,
		FileName:  "itinerary.pdf",
	})
	_, errMissing := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		BookingID: &missingBooking,
		FileName:  "itinerary.pdf",
	})
	if errForeign == nil || errMissing == nil {
		t.Fatal("expected both requests to fail")
	}
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("foreign error %q differs from missing error %q", errForeign, errMissing)
	}
}

func TestRequestUpload_OwnLinksAccepted(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeStore{})
	scope := testScope()

	customerID := uuid.New()
	bookingID := uuid.New()
	repo.customers[customerID] = scope.OutfitterID
	repo.bookings[bookingID] = scope.OutfitterID

	grant, err := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		CustomerID:  &customerID,
		BookingID:   &bookingID,
		FileName:    "deposit-receipt.pdf",
		ContentType: "application/pdf",
		SizeBytes:   512,
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	if grant.Document.CustomerID == nil || *grant.Document.CustomerID != customerID {
		t.Fatalf("customer link = %v, want %s", grant.Document.CustomerID, customerID)
	}
	if grant.Document.BookingID == nil || *grant.Document.BookingID != bookingID {
		t.Fatalf("booking link = %v, want %s", grant.Document.BookingID, bookingID)
	}
}

func TestDownloadURL_ForeignTenantIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeStore{})
	owner := testScope()

	grant, err := svc.RequestUpload(context.Background(), owner, repository.CreateParams{
		FileName: "map.png",
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}

	_, err = svc.DownloadURL(context.Background(), testScope(), grant.Document.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestDelete_RemovesRecordAndObject(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newTestService(repo, store)
	scope := testScope()

	grant, err := svc.RequestUpload(context.Background(), scope, repository.CreateParams{
		FileName: "old-waiver.pdf",
	})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}

	if err := svc.Delete(context.Background(), scope, grant.Document.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.documents) != 0 {
		t.Fatal("document record still present after delete")
	}
	if len(store.removedKeys) != 1 || store.removedKeys[0] != grant.Document.ObjectKey {
		t.Fatalf("removed keys = %v, want [%s]", store.removedKeys, grant.Document.ObjectKey)
	}

	if err := svc.Delete(context.Background(), scope, grant.Document.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete kind = %v, want NotFound", apperr.KindOf(err))
	}
}
