package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	pkgAuth "github.com/jewelmandi/jewelmandi-backend/pkg/auth"
	"github.com/jewelmandi/jewelmandi-backend/pkg/config"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

type staticChecker struct {
	active bool
}

func (s staticChecker) HasSession(context.Context, string) (bool, error) {
	return s.active, nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-test-secret",
		Issuer:            "jewelmandi-test",
		ExpirationMinutes: 5,
	}
}

func mintToken(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Role:     enums.UserRoleAdmin,
		JTI:      uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	return token
}

func TestAuth_SeedsIdentity(t *testing.T) {
	tenantID := uuid.New()

	var got tenant.Identity
	handler := Auth(authTestConfig(), staticChecker{active: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = tenant.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, tenantID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got.TenantID != tenantID {
		t.Fatalf("identity tenant = %s, want %s", got.TenantID, tenantID)
	}
	if got.Role != enums.UserRoleAdmin || got.AccessID == "" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(authTestConfig(), staticChecker{active: true}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_RevokedSession(t *testing.T) {
	handler := Auth(authTestConfig(), staticChecker{active: false}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	staffCtx := tenant.WithIdentity(context.Background(), tenant.Identity{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleStaff,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil).WithContext(staffCtx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff write status = %d, want 403", rec.Code)
	}

	adminCtx := tenant.WithIdentity(context.Background(), tenant.Identity{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAdmin,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/products", nil).WithContext(adminCtx)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin write status = %d, want 204", rec.Code)
	}
}
