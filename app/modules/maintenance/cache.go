package maintenance

import (
	"sync"
	"time"
)

// configCache holds the last fetched downtime config with a TTL. It is
// a value passed into the Gate rather than package state so tests can
// seed it.
type configCache struct {
	mu        sync.RWMutex
	config    DowntimeConfig
	fetched   bool
	expiresAt time.Time
}

func newConfigCache() *configCache {
	return &configCache{}
}

// Get returns the cached config, whether anything has been cached, and
// whether the entry is still fresh at now.
func (c *configCache) Get(now time.Time) (DowntimeConfig, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fetched {
		return DowntimeConfig{}, false, false
	}
	return c.config, true, now.Before(c.expiresAt)
}

// Set stores a config with the given TTL.
func (c *configCache) Set(config DowntimeConfig, now time.Time, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = config
	c.fetched = true
	c.expiresAt = now.Add(ttl)
}
