package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// FakeFetcher serves canned configs and counts fetches.
type FakeFetcher struct {
	FetchFn func(ctx context.Context) (DowntimeConfig, time.Duration, error)
	Calls   int
}

func (f *FakeFetcher) Fetch(ctx context.Context) (DowntimeConfig, time.Duration, error) {
	f.Calls++
	if f.FetchFn != nil {
		return f.FetchFn(ctx)
	}
	return DowntimeConfig{}, 0, nil
}

func newTestGate(fetcher Fetcher) *Gate {
	gate := NewGate(fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	gate.limiter = rate.NewLimiter(rate.Inf, 1)
	return gate
}

func TestGate_Blocked(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name    string
		config  DowntimeConfig
		blocked bool
	}{
		{
			name:    "inactive config never blocks",
			config:  DowntimeConfig{Active: false, Start: &before, End: &after},
			blocked: false,
		},
		{
			name:    "active inside window blocks",
			config:  DowntimeConfig{Active: true, Start: &before, End: &after},
			blocked: true,
		},
		{
			name:    "active before window starts does not block",
			config:  DowntimeConfig{Active: true, Start: &after},
			blocked: false,
		},
		{
			name:    "active after window ends does not block",
			config:  DowntimeConfig{Active: true, End: &before},
			blocked: false,
		},
		{
			name:    "absent bounds block whenever active",
			config:  DowntimeConfig{Active: true},
			blocked: true,
		},
		{
			name:    "end boundary is inclusive",
			config:  DowntimeConfig{Active: true, Start: &before, End: &now},
			blocked: true,
		},
		{
			name:    "start boundary is inclusive",
			config:  DowntimeConfig{Active: true, Start: &now, End: &after},
			blocked: true,
		},
		{
			name:    "admin override wins over an active window",
			config:  DowntimeConfig{Active: true, Start: &before, End: &after, OverriddenByAdmin: true},
			blocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.config
			gate := newTestGate(&FakeFetcher{
				FetchFn: func(ctx context.Context) (DowntimeConfig, time.Duration, error) {
					return config, 0, nil
				},
			})

			if got := gate.Blocked(context.Background(), now); got != tt.blocked {
				t.Errorf("Blocked() = %v, want %v", got, tt.blocked)
			}
		})
	}
}

func TestGate_CachesAcrossTTL(t *testing.T) {
	fetcher := &FakeFetcher{
		FetchFn: func(ctx context.Context) (DowntimeConfig, time.Duration, error) {
			return DowntimeConfig{Active: true}, 0, nil
		},
	}
	gate := newTestGate(fetcher)

	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	gate.Current(context.Background(), now)
	gate.Current(context.Background(), now.Add(10*time.Second))
	if fetcher.Calls != 1 {
		t.Errorf("expected a single fetch while fresh, got %d", fetcher.Calls)
	}

	gate.Current(context.Background(), now.Add(DefaultCacheTTL+time.Second))
	if fetcher.Calls != 2 {
		t.Errorf("expected a refetch after the TTL, got %d fetches", fetcher.Calls)
	}
}

func TestGate_HonorsSourceTTL(t *testing.T) {
	fetcher := &FakeFetcher{
		FetchFn: func(ctx context.Context) (DowntimeConfig, time.Duration, error) {
			return DowntimeConfig{}, 5 * time.Minute, nil
		},
	}
	gate := newTestGate(fetcher)

	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	gate.Current(context.Background(), now)
	gate.Current(context.Background(), now.Add(4*time.Minute))
	if fetcher.Calls != 1 {
		t.Errorf("expected the source max-age to extend the cache, got %d fetches", fetcher.Calls)
	}
}

func TestGate_ServesStaleOnFetchFailure(t *testing.T) {
	failing := false
	fetcher := &FakeFetcher{
		FetchFn: func(ctx context.Context) (DowntimeConfig, time.Duration, error) {
			if failing {
				return DowntimeConfig{}, 0, errors.New("source unreachable")
			}
			return DowntimeConfig{Active: true, Message: "back soon"}, 0, nil
		},
	}
	gate := newTestGate(fetcher)

	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	gate.Current(context.Background(), now)

	failing = true
	config := gate.Current(context.Background(), now.Add(DefaultCacheTTL+time.Minute))
	if !config.Active || config.Message != "back soon" {
		t.Errorf("expected the stale config to survive a failed refresh, got %+v", config)
	}
	if !gate.Blocked(context.Background(), now.Add(DefaultCacheTTL+time.Minute)) {
		t.Error("expected stale active config to keep blocking")
	}
}

func TestGate_ThrottlesRefreshes(t *testing.T) {
	fetcher := &FakeFetcher{}
	gate := NewGate(fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	gate.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	gate.limiter.Allow() // burn the burst so every refresh is throttled

	config := gate.Current(context.Background(), now)
	if fetcher.Calls != 0 {
		t.Errorf("expected the throttle to suppress the fetch, got %d", fetcher.Calls)
	}
	if config.Active {
		t.Error("expected the zero config while nothing is cached")
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=120")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active": true, "message": "league maintenance"}`))
	}))
	defer server.Close()

	fetcher := &HTTPFetcher{URL: server.URL, Client: server.Client()}
	config, ttl, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !config.Active || config.Message != "league maintenance" {
		t.Errorf("unexpected config: %+v", config)
	}
	if ttl != 2*time.Minute {
		t.Errorf("expected max-age hint of 2m, got %s", ttl)
	}
}

func TestHTTPFetcher_FetchRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := &HTTPFetcher{URL: server.URL, Client: server.Client()}
	if _, _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestMaxAgeHint(t *testing.T) {
	tests := []struct {
		name         string
		cacheControl string
		want         time.Duration
	}{
		{name: "plain max-age", cacheControl: "max-age=60", want: time.Minute},
		{name: "with other directives", cacheControl: "public, max-age=30, must-revalidate", want: 30 * time.Second},
		{name: "absent", cacheControl: "no-store", want: 0},
		{name: "empty header", cacheControl: "", want: 0},
		{name: "malformed value", cacheControl: "max-age=soon", want: 0},
		{name: "negative value", cacheControl: "max-age=-5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxAgeHint(tt.cacheControl); got != tt.want {
				t.Errorf("maxAgeHint(%q) = %s, want %s", tt.cacheControl, got, tt.want)
			}
		})
	}
}

func TestMiddleware_RejectsDuringDowntime(t *testing.T) {
	gate := newTestGate(&FakeFetcher{
		FetchFn: func(ctx context.Context) (DowntimeConfig, time.Duration, error) {
			return DowntimeConfig{Active: true, Message: "court resurfacing"}, 0, nil
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run during downtime")
	})
	rec := httptest.NewRecorder()
	Middleware(gate)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
}

func TestMiddleware_PassesWhenClear(t *testing.T) {
	gate := newTestGate(&FakeFetcher{})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	Middleware(gate)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches", nil))

	if !called {
		t.Fatal("expected the handler to run")
	}
}
