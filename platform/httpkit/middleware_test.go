package httpkit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"outfitter_backend/platform/tenant"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testJWTConfig struct{}

func (testJWTConfig) GetJWTAccessSecret() string { return "test-access-secret" }

func mintAccessToken(t *testing.T, userID, outfitterID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          userID.String(),
		"outfitter_id": outfitterID.String(),
		"role":         role,
		"type":         "access",
		"exp":          time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-access-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newScopeEchoRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/scoped", AuthRequired(testJWTConfig{}), func(c *gin.Context) {
		scope, ok := MustGetScope(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"outfitterId": scope.OutfitterID.String()})
	})
	return engine
}

func TestAuthRequired_MissingTokenIs401(t *testing.T) {
	engine := newScopeEchoRouter()

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequired_ForgedSignatureIs401(t *testing.T) {
	engine := newScopeEchoRouter()

	claims := jwt.MapClaims{
		"sub":          uuid.New().String(),
		"outfitter_id": uuid.New().String(),
		"role":         "admin",
		"type":         "access",
		"exp":          time.Now().Add(time.Minute).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestAuthRequired_TokenWithoutOutfitterFailsClosed(t *testing.T) {
	engine := newScopeEchoRouter()

	// A valid user credential with no tenant binding must be rejected,
	// not defaulted to some outfitter.
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "admin",
		"type": "access",
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-access-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tenantless token, got %d", rec.Code)
	}
}

func TestAuthRequired_RefreshTokenRejectedOnAccessPath(t *testing.T) {
	engine := newScopeEchoRouter()

	claims := jwt.MapClaims{
		"sub":          uuid.New().String(),
		"outfitter_id": uuid.New().String(),
		"role":         "admin",
		"type":         "refresh",
		"exp":          time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-access-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", rec.Code)
	}
}

// Concurrent requests from two different outfitters must each observe their
// own scope. The scope lives in the request-local gin context, so there is
// no shared state to cross-contaminate, and this test pins that down.
func TestAuthRequired_ConcurrentRequestsKeepTheirOwnTenant(t *testing.T) {
	engine := newScopeEchoRouter()

	outfitterA := uuid.New()
	outfitterB := uuid.New()
	tokenA := mintAccessToken(t, uuid.New(), outfitterA, "admin")
	tokenB := mintAccessToken(t, uuid.New(), outfitterB, "guide")

	const rounds = 50
	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)

	run := func(token string, want uuid.UUID) {
		defer wg.Done()
		req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			errs <- fmt.Errorf("unexpected status %d", rec.Code)
			return
		}
		wantBody := fmt.Sprintf("%q:%q", "outfitterId", want.String())
		if body := rec.Body.String(); !strings.Contains(body, wantBody) {
			errs <- fmt.Errorf("scope cross-talk: want %s in %s", wantBody, body)
		}
	}

	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go run(tokenA, outfitterA)
		go run(tokenB, outfitterB)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}

func TestRequireAdmin_GuideIs403(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.DELETE("/admin-only", AuthRequired(testJWTConfig{}), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	token := mintAccessToken(t, uuid.New(), uuid.New(), string(tenant.RoleGuide))
	req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guide on admin route, got %d", rec.Code)
	}
}
