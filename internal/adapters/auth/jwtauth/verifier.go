// Package jwtauth verifica tokens HS256 emitidos con un secreto compartido.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pedigree-registry/internal/ports/auth"
)

var (
	ErrNoSecret        = errors.New("jwt secret not configured")
	ErrTokenEmpty      = errors.New("token is empty")
	ErrMissingTenantID = errors.New("token missing tenant_id")
)

// TenantClaims son los claims que espera el registro. sub es el usuario.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewVerifier(secret, issuer string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	issuer = strings.TrimSpace(issuer)
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc TenantClaims
	_, err := v.parser.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, jwt.ErrTokenRequiredClaimMissing
	}
	tid := strings.TrimSpace(tc.TenantID)
	if tid == "" {
		return auth.Claims{}, ErrMissingTenantID
	}
	return auth.Claims{
		UserID:   sub,
		Email:    strings.TrimSpace(tc.Email),
		TenantID: tid,
	}, nil
}

// Issue firma un token para un usuario del tenant. Lo usan los tests y las herramientas de soporte.
func (v *Verifier) Issue(c auth.Claims, ttl time.Duration, now time.Time) (string, error) {
	tc := TenantClaims{
		TenantID: c.TenantID,
		Email:    c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(v.secret)
}
