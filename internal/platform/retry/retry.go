// Package retry reintenta lecturas idempotentes con backoff exponencial.
// Las mutaciones (approve/deny/revoke/create) nunca pasan por aquí.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pedigree-registry/internal/platform/apperr"
)

type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

// Read ejecuta fn y reintenta sólo errores transitorios: los errores de dominio
// (not found, privacy, validation...) se devuelven de inmediato.
func Read[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	eb := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		eb.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		eb.MaxInterval = p.MaxInterval
	}
	eb.MaxElapsedTime = 0

	var b backoff.BackOff = backoff.WithMaxRetries(eb, p.MaxRetries)
	b = backoff.WithContext(b, ctx)

	return backoff.RetryWithData(func() (T, error) {
		v, err := fn(ctx)
		if err != nil && !Transient(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, b)
}

// Transient: cualquier error que no sea de dominio ni de cancelación.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return apperr.KindOf(err) == apperr.KindInternal
}
