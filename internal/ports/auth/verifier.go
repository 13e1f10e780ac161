package auth

import "context"

// AuthVerifier verifica un token. Claims sin TenantID no sirven al registro:
// los verifiers deben rechazarlos con error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
