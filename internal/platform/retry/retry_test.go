package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"pedigree-registry/internal/platform/apperr"
)

var fastPolicy = Policy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestRead_RetriesTransientErrors(t *testing.T) {
	calls := 0
	v, err := Read(context.Background(), fastPolicy, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "ok" || calls != 3 {
		t.Fatalf("expected ok after 3 calls, got %q after %d", v, calls)
	}
}

func TestRead_DoesNotRetryDomainErrors(t *testing.T) {
	calls := 0
	_, err := Read(context.Background(), fastPolicy, func(context.Context) (int, error) {
		calls++
		return 0, apperr.NotFound("animal a-1 not found")
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestRead_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	_, err := Read(context.Background(), fastPolicy, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("timeout talking to store")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 4 {
		t.Fatalf("expected 1 call + 3 retries, got %d", calls)
	}
}
