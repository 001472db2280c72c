package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/maintenance"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleGetDowntime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.deps.Gate == nil {
		json.NewEncoder(w).Encode(maintenance.DowntimeConfig{})
		return
	}

	config := s.deps.Gate.Current(r.Context(), time.Now())
	json.NewEncoder(w).Encode(config)
}
