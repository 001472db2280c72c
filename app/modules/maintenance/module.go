package maintenance

import (
	"log/slog"
	"net/http"
	"time"
)

// Module is the maintenance module: the downtime gate and its HTTP
// middleware.
type Module struct {
	Gate *Gate
}

// NewModule wires the gate over the configured downtime source. An
// empty sourceURL disables the gate entirely.
func NewModule(sourceURL string, cacheTTL, refreshTimeout time.Duration, logger *slog.Logger) *Module {
	if sourceURL == "" {
		return &Module{}
	}

	gate := NewGate(&HTTPFetcher{URL: sourceURL, Client: &http.Client{}}, logger)
	if cacheTTL > 0 {
		gate.defaultTTL = cacheTTL
	}
	if refreshTimeout > 0 {
		gate.timeout = refreshTimeout
	}
	return &Module{Gate: gate}
}

// Middleware returns the downtime middleware, or a pass-through when
// the gate is disabled.
func (m *Module) Middleware() func(http.Handler) http.Handler {
	if m.Gate == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return Middleware(m.Gate)
}
