package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/go-chi/chi/v5"
)

func matchIDParam(r *http.Request) (sharedtypes.MatchID, error) {
	raw := chi.URLParam(r, "matchID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid match ID %q", raw)
	}
	return sharedtypes.MatchID(id), nil
}

// CreateMatchDto represents the input data for scheduling a match.
type CreateMatchDto struct {
	CourtNumber int                `json:"courtNumber"`
	TeamA       sharedtypes.TeamID `json:"teamA"`
	TeamB       sharedtypes.TeamID `json:"teamB"`
	TrackerTeam sharedtypes.TeamID `json:"trackerTeam"`
	StartTime   time.Time          `json:"startTime"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var input CreateMatchDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	match := &sharedtypes.Match{
		CourtNumber: input.CourtNumber,
		TeamA:       input.TeamA,
		TeamB:       input.TeamB,
		TrackerTeam: input.TrackerTeam,
		StartTime:   input.StartTime,
	}
	if err := s.deps.Matches.CreateMatch(r.Context(), match); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create match: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.deps.Matches.ListMatches(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list matches: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := s.deps.Matches.GetMatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, matchdb.ErrMatchNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch match: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}

// UpdateScoreDto represents the input data for a live score update.
type UpdateScoreDto struct {
	ScoreA     int                   `json:"scoreA"`
	ScoreB     int                   `json:"scoreB"`
	CurrentSet sharedtypes.SetNumber `json:"currentSet"`
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var input UpdateScoreDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.deps.Matches.UpdateScore(r.Context(), id, input.ScoreA, input.ScoreB, input.CurrentSet); err != nil {
		switch {
		case errors.Is(err, matchservice.ErrMatchLocked):
			http.Error(w, "Match is completed and locked", http.StatusConflict)
		case errors.Is(err, matchdb.ErrMatchNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		case errors.Is(err, matchservice.ErrInvalidScore):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, fmt.Sprintf("Failed to update score: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFinalizeMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.deps.Matches.FinalizeMatch(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, matchservice.ErrInvalidTransition):
			http.Error(w, "Match is not active", http.StatusConflict)
		case errors.Is(err, matchdb.ErrMatchNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to finalize match: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UnlockDto carries the admin credentials for an unlock.
type UnlockDto struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UnlockResponse returns a short-lived admin token alongside the unlock.
type UnlockResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleUnlockMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var input UnlockDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.deps.Matches.UnlockMatch(r.Context(), id, input.Username, input.Password); err != nil {
		switch {
		case errors.Is(err, matchservice.ErrInvalidCredentials):
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, matchservice.ErrInvalidTransition):
			http.Error(w, "Match is not completed", http.StatusConflict)
		case errors.Is(err, matchdb.ErrMatchNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to unlock match: %v", err), http.StatusInternalServerError)
		}
		return
	}

	token, err := s.deps.Auth.Tokens.GenerateToken(input.Username, s.deps.Auth.TokenTTL)
	if err != nil {
		// The unlock already happened; report it without a token.
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UnlockResponse{Token: token})
}

func (s *Server) handleListUnlockAudits(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	audits, err := s.deps.Matches.ListUnlockAudits(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list unlock audits: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(audits)
}
