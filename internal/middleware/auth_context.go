package middleware

import (
	"context"
	"net/http"
	"strings"

	"pedigree-registry/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	DebugTenantHeader = "X-Debug-Tenant-ID"
	DebugUserHeader   = "X-Debug-User-ID"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-Tenant-ID (y opcional X-Debug-User-ID) => setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				tid := strings.TrimSpace(r.Header.Get(DebugTenantHeader))
				if tid == "" {
					next.ServeHTTP(w, r)
					return
				}
				uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
				if uid == "" {
					uid = "debug@" + tid
				}
				ctx := WithClaims(r.Context(), auth.Claims{UserID: uid, TenantID: tid})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// TenantID es el viewerTenantId de cada operación; vacío => no autenticado.
func TenantID(ctx context.Context) (string, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.TenantID) == "" {
		return "", false
	}
	return c.TenantID, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
