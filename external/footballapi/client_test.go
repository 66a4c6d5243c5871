package footballapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/platform/resilience"
	"github.com/turugol/quiniela/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	return client, server
}

func TestClient_FetchFixtures_MapsProviderPayload(t *testing.T) {
	var gotKey atomic.Value
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get(apiKeyHeader))
		if r.URL.Path != "/fixtures" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("round") != "Jornada 9" {
			t.Errorf("unexpected round %q", r.URL.Query().Get("round"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": [],
			"results": 1,
			"response": [
				{
					"fixture": {"id": 1162987, "date": "2026-09-12T17:00:00+00:00", "status": {"short": "NS"}},
					"league": {"id": 262, "name": "Liga MX", "round": "Jornada 9"},
					"teams": {
						"home": {"name": "América", "logo": "https://media.api-sports.io/football/teams/2287.png"},
						"away": {"name": "Chivas", "logo": "https://media.api-sports.io/football/teams/2278.png"}
					}
				}
			]
		}`))
	})

	client, _ := newTestClient(t, handler)

	fixtures, err := client.FetchFixtures(t.Context(), 262, 2026, "Jornada 9")
	if err != nil {
		t.Fatalf("FetchFixtures: %v", err)
	}

	if gotKey.Load() != "test-key" {
		t.Fatalf("api key header = %v", gotKey.Load())
	}
	if len(fixtures) != 1 {
		t.Fatalf("fixtures = %d, want 1", len(fixtures))
	}

	f := fixtures[0]
	if f.ExternalID != 1162987 || f.Status != "NS" || f.HomeTeamName != "América" {
		t.Fatalf("mapped fixture = %+v", f)
	}
	want := time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC)
	if !f.KickoffAt.Equal(want) {
		t.Fatalf("kickoff = %v, want %v", f.KickoffAt, want)
	}
}

func TestClient_FetchLeagues_MapsSeasonList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("season") != "2026" {
			t.Errorf("unexpected season %q", r.URL.Query().Get("season"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errors": [],
			"results": 2,
			"response": [
				{"league": {"id": 262, "name": "Liga MX", "logo": "https://media.api-sports.io/football/leagues/262.png"}, "country": {"name": "Mexico"}},
				{"league": {"id": 0, "name": "broken"}, "country": {"name": ""}}
			]
		}`))
	})

	client, _ := newTestClient(t, handler)

	leagues, err := client.FetchLeagues(t.Context(), 2026)
	if err != nil {
		t.Fatalf("FetchLeagues: %v", err)
	}

	if len(leagues) != 1 {
		t.Fatalf("leagues = %d, want 1 after dropping invalid ids", len(leagues))
	}
	if leagues[0].ExternalID != 262 || leagues[0].Country != "Mexico" {
		t.Fatalf("mapped league = %+v", leagues[0])
	}
}

func TestClient_FetchRounds_ReturnsCurrentMarker(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("current") == "true" {
			_, _ = w.Write([]byte(`{"errors": [], "results": 1, "response": ["Jornada 9"]}`))
			return
		}
		_, _ = w.Write([]byte(`{"errors": [], "results": 3, "response": ["Jornada 8", "Jornada 9", "Jornada 10"]}`))
	})

	client, _ := newTestClient(t, handler)

	rounds, current, err := client.FetchRounds(t.Context(), 262, 2026)
	if err != nil {
		t.Fatalf("FetchRounds: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("rounds = %v", rounds)
	}
	if current != "Jornada 9" {
		t.Fatalf("current = %q, want Jornada 9", current)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [], "results": 0, "response": []}`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	fixtures, err := client.FetchFixtures(t.Context(), 262, 2026, "Jornada 9")
	if err != nil {
		t.Fatalf("FetchFixtures after retry: %v", err)
	}
	if len(fixtures) != 0 {
		t.Fatalf("fixtures = %v, want empty", fixtures)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("provider calls = %d, want 2", got)
	}
}

func TestClient_ProviderErrorPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": {"token": "Error/Missing application key."}, "results": 0, "response": []}`))
	})

	client, _ := newTestClient(t, handler)

	if _, err := client.FetchFixtures(t.Context(), 262, 2026, "Jornada 9"); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestClient_CircuitBreakerRejectsWhenOpen(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, handler)

	for i := 0; i < 3; i++ {
		if _, err := client.FetchFixtures(t.Context(), 262, 2026, "Jornada 9"); err == nil {
			t.Fatalf("call %d unexpectedly succeeded", i)
		}
	}

	_, err := client.FetchFixtures(t.Context(), 262, 2026, "Jornada 9")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("err = %v, want ErrDependencyUnavailable", err)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	got := sanitizeSensitiveText("Get https://host: x-apisports-key: secret123 refused", "secret123")
	if got != "Get https://host: x-apisports-key: REDACTED refused" {
		t.Fatalf("sanitized = %q", got)
	}
}
