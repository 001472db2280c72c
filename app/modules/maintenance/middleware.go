package maintenance

import (
	"encoding/json"
	"net/http"
	"time"
)

// Middleware refuses requests with 503 while a maintenance window is
// active. Mount it on mutating routes only, reads stay available during
// downtime.
func Middleware(gate *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			if gate.Blocked(r.Context(), now) {
				config := gate.Current(r.Context(), now)
				message := config.Message
				if message == "" {
					message = "The tracker is down for maintenance."
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"error": message})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
