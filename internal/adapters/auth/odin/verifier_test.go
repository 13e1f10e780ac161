package odin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pedigree-registry/internal/platform/httpclient"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	hc, err := httpclient.NewWithBaseURL(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("base url: %v", err)
	}
	return NewVerifier(newWithHTTP(hc, "k"))
}

func TestVerify_OK(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "k" {
			t.Errorf("missing api key header")
		}
		var in verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Token != "tok" {
			t.Errorf("token = %q", in.Token)
		}
		_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "u1", Email: "a@b.c", TenantID: "kennel-a"})
	})

	c, err := v.Verify(context.Background(), " tok ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != "u1" || c.TenantID != "kennel-a" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrOdinUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerify_Upstream(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := v.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrOdinUpstream) {
		t.Fatalf("expected upstream, got %v", err)
	}
}

func TestVerify_RequiresTenant(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "u1"})
	})

	_, err := v.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrMissingTenantID) {
		t.Fatalf("expected missing tenant, got %v", err)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	v := NewVerifier(newWithHTTP(httpclient.New(time.Second), "k"))
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := NewVerifier(c).Verify(context.Background(), "tok"); !errors.Is(err, ErrOdinNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}
