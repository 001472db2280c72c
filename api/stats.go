package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	statlogservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/application"
	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/go-chi/chi/v5"
)

// setParam parses the optional ?set= query parameter; 0 means all sets.
func setParam(r *http.Request) (sharedtypes.SetNumber, error) {
	raw := r.URL.Query().Get("set")
	if raw == "" {
		return 0, nil
	}
	set, err := strconv.Atoi(raw)
	if err != nil || set < 1 {
		return 0, fmt.Errorf("invalid set %q", raw)
	}
	return sharedtypes.SetNumber(set), nil
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	playerID := sharedtypes.PlayerID(r.URL.Query().Get("player"))
	if playerID == "" {
		http.Error(w, "player query parameter is required", http.StatusBadRequest)
		return
	}

	set, err := setParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := s.deps.Stats.GetPlayerStats(r.Context(), matchID, playerID, set)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch player stats: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set, err := setParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := statlogdb.EventFilter{
		PlayerID: sharedtypes.PlayerID(r.URL.Query().Get("player")),
		Set:      set,
	}

	events, err := s.deps.StatLog.Read(r.Context(), matchID, filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read events: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// AppendEventDto represents the input data for recording a stat event.
type AppendEventDto struct {
	PlayerID  sharedtypes.PlayerID  `json:"playerId"`
	StatName  sharedtypes.StatKind  `json:"statName"`
	Value     int                   `json:"value"`
	Set       sharedtypes.SetNumber `json:"set"`
	Timestamp time.Time             `json:"timestamp,omitempty"`
}

// AppendEventResponse reports where the event landed in the match log.
type AppendEventResponse struct {
	Position sharedtypes.LogPosition `json:"position"`
}

func (s *Server) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var input AppendEventDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	position, err := s.deps.StatLog.Append(r.Context(), sharedtypes.StatEvent{
		MatchID:   matchID,
		PlayerID:  input.PlayerID,
		StatName:  input.StatName,
		Value:     input.Value,
		Set:       input.Set,
		Timestamp: input.Timestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, statlogservice.ErrMatchLocked):
			http.Error(w, "Match is completed and locked", http.StatusConflict)
		case statlogservice.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, fmt.Sprintf("Failed to record event: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AppendEventResponse{Position: position})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	playerID := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))
	set, err := setParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := s.deps.Stats.RenderPlayerChart(r.Context(), matchID, playerID, set)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
