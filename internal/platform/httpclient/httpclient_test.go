package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_RelativePathAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ping" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Extra") != "1" {
			t.Errorf("missing extra header")
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("base url: %v", err)
	}

	var out map[string]string
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/ping", map[string]string{"X-Extra": "1"}, map[string]string{"msg": "hola"}, &out)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out["echo"] != "hola" {
		t.Fatalf("out = %+v", out)
	}
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL+"/x", nil, nil, nil)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("status should not match 500")
	}
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	if _, err := c.resolveURL("/relative"); err == nil {
		t.Fatalf("expected error for relative path without base url")
	}
	if got, err := c.resolveURL("https://example.test/a"); err != nil || got != "https://example.test/a" {
		t.Fatalf("absolute url = %q, %v", got, err)
	}
	if _, err := NewWithBaseURL("not a url", 0); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
