package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"golang.org/x/time/rate"
)

const (
	// DefaultCacheTTL is how long a fetched config is trusted when the
	// source sends no max-age hint.
	DefaultCacheTTL = 30 * time.Second

	// DefaultRefreshTimeout bounds a single refresh round trip.
	DefaultRefreshTimeout = 5 * time.Second
)

// Fetcher loads the current downtime config from its source.
type Fetcher interface {
	Fetch(ctx context.Context) (DowntimeConfig, time.Duration, error)
}

// Gate answers whether the club is inside a maintenance window. It
// caches the fetched config and serves stale data when the source is
// unreachable, downtime checks never fail a request on their own.
type Gate struct {
	fetcher    Fetcher
	cache      *configCache
	limiter    *rate.Limiter
	logger     *slog.Logger
	timeout    time.Duration
	defaultTTL time.Duration
}

// NewGate creates a gate over the given fetcher.
func NewGate(fetcher Fetcher, logger *slog.Logger) *Gate {
	return &Gate{
		fetcher:    fetcher,
		cache:      newConfigCache(),
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		logger:     logger,
		timeout:    DefaultRefreshTimeout,
		defaultTTL: DefaultCacheTTL,
	}
}

// Blocked reports whether mutating traffic should be refused at now.
// An admin override always wins.
func (g *Gate) Blocked(ctx context.Context, now time.Time) bool {
	config := g.Current(ctx, now)

	if config.OverriddenByAdmin {
		return false
	}
	if !config.Active {
		return false
	}
	return config.InWindow(now)
}

// Current returns the cached config, refreshing it when stale. A failed
// refresh keeps the stale value.
func (g *Gate) Current(ctx context.Context, now time.Time) DowntimeConfig {
	config, cached, fresh := g.cache.Get(now)
	if cached && fresh {
		return config
	}

	if !g.limiter.Allow() {
		// Another caller just refreshed or a refresh is being throttled;
		// whatever is cached stands.
		return config
	}

	refreshCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	fetched, ttl, err := g.fetcher.Fetch(refreshCtx)
	if err != nil {
		g.logger.WarnContext(ctx, "Failed to refresh downtime config, keeping cached value",
			attr.Bool("had_cached", cached),
			attr.Error(err),
		)
		return config
	}

	if ttl <= 0 {
		ttl = g.defaultTTL
	}
	g.cache.Set(fetched, now, ttl)
	return fetched
}

// HTTPFetcher loads the downtime config from a JSON endpoint, honoring
// Cache-Control max-age as the cache TTL.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Fetch performs the HTTP round trip.
func (f *HTTPFetcher) Fetch(ctx context.Context) (DowntimeConfig, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return DowntimeConfig{}, 0, fmt.Errorf("failed to build downtime request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return DowntimeConfig{}, 0, fmt.Errorf("failed to fetch downtime config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DowntimeConfig{}, 0, fmt.Errorf("downtime source returned status %d", resp.StatusCode)
	}

	var config DowntimeConfig
	if err := json.NewDecoder(resp.Body).Decode(&config); err != nil {
		return DowntimeConfig{}, 0, fmt.Errorf("failed to decode downtime config: %w", err)
	}

	return config, maxAgeHint(resp.Header.Get("Cache-Control")), nil
}

// maxAgeHint extracts a max-age directive as a duration, 0 when absent.
func maxAgeHint(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		value, ok := strings.CutPrefix(directive, "max-age=")
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	return 0
}
