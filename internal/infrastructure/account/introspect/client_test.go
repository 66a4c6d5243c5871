package introspect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/platform/resilience"
	"github.com/turugol/quiniela/internal/usecase"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/tokens/introspect",
		Logger:         logging.NewNop(),
	})
}

func TestVerifyAccessToken_ParsesActivePrincipal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/tokens/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":       true,
			"user_id":      "user-123",
			"display_name": "Juan Pérez",
			"email":        "juan@example.com",
			"organizer":    true,
		})
	}))
	defer srv.Close()

	principal, err := newTestClient(srv).VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}

	if principal.ID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.ID)
	}
	if principal.DisplayName != "Juan Pérez" {
		t.Fatalf("unexpected display name: %s", principal.DisplayName)
	}
	if !principal.Organizer {
		t.Fatal("expected organizer principal")
	}
}

func TestVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).VerifyAccessToken(context.Background(), "stale-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("introspection must not be called for an empty token")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_CachesByTokenHash(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-cache",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.ID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.ID)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err == nil {
			t.Fatal("expected introspection failure")
		}
	}

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
}
