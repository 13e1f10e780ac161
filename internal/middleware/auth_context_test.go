package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pedigree-registry/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(context.Context, string) (auth.Claims, error) {
	return s.claims, s.err
}

func tenantOf(t *testing.T, h http.Handler, req *http.Request) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header().Get("X-Tenant")
}

func echoTenant() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tid, ok := TenantID(r.Context()); ok {
			w.Header().Set("X-Tenant", tid)
		}
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	h := AuthContext(nil)(echoTenant())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugTenantHeader, "kennel-a")
	if got := tenantOf(t, h, req); got != "kennel-a" {
		t.Fatalf("expected kennel-a, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := tenantOf(t, h, req); got != "" {
		t.Fatalf("expected no tenant without header, got %q", got)
	}
}

func TestAuthContext_Verifier(t *testing.T) {
	ok := AuthContext(stubVerifier{claims: auth.Claims{UserID: "u1", TenantID: "kennel-b"}})(echoTenant())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	if got := tenantOf(t, ok, req); got != "kennel-b" {
		t.Fatalf("expected kennel-b, got %q", got)
	}

	// En modo verifier el header de debug se ignora.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugTenantHeader, "kennel-a")
	if got := tenantOf(t, ok, req); got != "" {
		t.Fatalf("debug header must be ignored with a verifier, got %q", got)
	}

	bad := AuthContext(stubVerifier{err: errors.New("expired")})(echoTenant())
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	if got := tenantOf(t, bad, req); got != "" {
		t.Fatalf("expected no tenant on verify error, got %q", got)
	}
}
