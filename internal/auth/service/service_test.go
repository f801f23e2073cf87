package service

import (
	"context"
	"testing"
	"time"

	"outfitter_backend/internal/auth/password"
	"outfitter_backend/internal/auth/repository"
	"outfitter_backend/internal/auth/token"
	"outfitter_backend/internal/events"
	"outfitter_backend/platform/apperr"
	"outfitter_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeAuthConfig struct{}

func (fakeAuthConfig) GetJWTAccessSecret() string        { return "unit-test-secret" }
func (fakeAuthConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (fakeAuthConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }
func (fakeAuthConfig) GetInviteTokenTTL() time.Duration  { return 24 * time.Hour }

type fakeRepo struct {
	usersByEmail  map[string]repository.User
	usersByID     map[uuid.UUID]repository.User
	refreshTokens map[string]repository.RefreshToken
	revoked       []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail:  make(map[string]repository.User),
		usersByID:     make(map[uuid.UUID]repository.User),
		refreshTokens: make(map[string]repository.RefreshToken),
	}
}

func (f *fakeRepo) addUser(u repository.User) {
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
}

func (f *fakeRepo) CreateOutfitterWithAdmin(_ context.Context, outfitterName, email, name, hash string) (repository.Outfitter, repository.User, error) {
	outfitter := repository.Outfitter{ID: uuid.New(), Name: outfitterName, Active: true}
	user := repository.User{
		ID:              uuid.New(),
		OutfitterID:     outfitter.ID,
		Email:           email,
		Name:            name,
		PasswordHash:    hash,
		Role:            "admin",
		Active:          true,
		OutfitterActive: true,
		OutfitterName:   outfitterName,
	}
	f.addUser(user)
	return outfitter, user, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) StoreRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.refreshTokens[tokenHash] = repository.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeRepo) GetRefreshToken(_ context.Context, tokenHash string) (repository.RefreshToken, error) {
	t, ok := f.refreshTokens[tokenHash]
	if !ok {
		return repository.RefreshToken{}, apperr.Unauthenticated("invalid refresh token")
	}
	return t, nil
}

func (f *fakeRepo) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	if t, ok := f.refreshTokens[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
		f.refreshTokens[tokenHash] = t
	}
	f.revoked = append(f.revoked, tokenHash)
	return nil
}

func (f *fakeRepo) GetStaffInvite(_ context.Context, _ string) (repository.StaffInvite, error) {
	return repository.StaffInvite{}, apperr.NotFound("invite not found")
}

func (f *fakeRepo) AcceptStaffInvite(_ context.Context, _ uuid.UUID, _, _, _ string) (repository.User, error) {
	return repository.User{}, apperr.NotFound("invite not found")
}

func newService(repo repository.Repository) *Service {
	log := logger.New("development")
	return New(repo, fakeAuthConfig{}, events.NewInMemoryBus(log), log)
}

func seedUser(t *testing.T, repo *fakeRepo, plain string, outfitterActive bool) repository.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := repository.User{
		ID:              uuid.New(),
		OutfitterID:     uuid.New(),
		Email:           "hank@bigskyoutfitters.test",
		Name:            "Hank",
		PasswordHash:    hash,
		Role:            "admin",
		Active:          true,
		OutfitterActive: outfitterActive,
		OutfitterName:   "Big Sky Outfitters",
	}
	repo.addUser(user)
	return user
}

func TestSignIn_AccessTokenCarriesUserOutfitter(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "correct-horse-battery", true)
	svc := newService(repo)

	_, pair, err := svc.SignIn(context.Background(), user.Email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	parsed, err := jwt.Parse(pair.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("unit-test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse access token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)

	// The tenant binding comes from the user row, not from anything the
	// client sent during sign-in.
	if got := claims["outfitter_id"]; got != user.OutfitterID.String() {
		t.Fatalf("outfitter_id claim = %v, want %s", got, user.OutfitterID)
	}
	if got := claims["role"]; got != "admin" {
		t.Fatalf("role claim = %v, want admin", got)
	}
	if got := claims["type"]; got != "access" {
		t.Fatalf("type claim = %v, want access", got)
	}
}

func TestSignIn_DisabledOutfitterIsForbidden(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "correct-horse-battery", false)
	svc := newService(repo)

	_, _, err := svc.SignIn(context.Background(), user.Email, "correct-horse-battery")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized for disabled outfitter, got %v", err)
	}
}

func TestSignIn_BadPasswordIsUnauthenticated(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "correct-horse-battery", true)
	svc := newService(repo)

	_, _, err := svc.SignIn(context.Background(), user.Email, "wrong")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestRefresh_RotationRevokesOldToken(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "correct-horse-battery", true)
	svc := newService(repo)

	_, pair, err := svc.SignIn(context.Background(), user.Email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a new refresh token after rotation")
	}

	// Replaying the consumed token must fail.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Fatal("expected replayed refresh token to be rejected")
	}

	oldHash := token.HashSHA256(pair.RefreshToken)
	found := false
	for _, h := range repo.revoked {
		if h == oldHash {
			found = true
		}
	}
	if !found {
		t.Fatal("expected old refresh token to be revoked")
	}
}
