package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth"
	"github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/maintenance"
	matchservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/application"
	statlogservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/application"
	statsservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/stats/application"
	teamservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/application"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Deps are the module services the HTTP API fronts.
type Deps struct {
	StatLog statlogservice.Service
	Stats   statsservice.Service
	Matches matchservice.Service
	Teams   teamservice.Service
	Auth    *auth.Module

	// Gate blocks mutating routes during a maintenance window; nil
	// disables the check.
	Gate *maintenance.Gate
}

// Server is the club-facing HTTP API.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
	unlockIPs  *IPRateLimiter
}

// NewServer builds the API server on addr.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		deps:   deps,
		logger: logger,
		// Unlock carries credentials; keep brute forcing slow.
		unlockIPs: NewIPRateLimiter(rate.Every(2*time.Second), 5),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	downtime := func(next http.Handler) http.Handler { return next }
	if s.deps.Gate != nil {
		downtime = maintenance.Middleware(s.deps.Gate)
	}

	r.Get("/healthz", s.handleHealthz)
	r.Get("/downtime", s.handleGetDowntime)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", s.handleListTeams)
		r.Get("/{teamID}", s.handleGetTeam)
		r.With(downtime).Post("/", s.handleCreateTeam)
		r.With(downtime).Post("/import", s.handleImportRoster)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", s.handleListMatches)
		r.With(downtime).Post("/", s.handleCreateMatch)

		r.Route("/{matchID}", func(r chi.Router) {
			r.Get("/", s.handleGetMatch)
			r.Get("/stats", s.handleGetStats)
			r.Get("/events", s.handleGetEvents)
			r.Get("/unlock-audits", s.handleListUnlockAudits)
			r.Get("/players/{playerID}/chart.png", s.handleGetChart)

			r.Group(func(r chi.Router) {
				r.Use(downtime)
				r.Post("/events", s.handleAppendEvent)
				r.Post("/score", s.handleUpdateScore)
				r.Post("/finalize", s.handleFinalizeMatch)
			})

			// Unlock stays reachable during downtime so an admin can
			// recover a match, but it is rate limited per IP.
			r.With(RateLimitMiddleware(s.unlockIPs)).Post("/unlock", s.handleUnlockMatch)
		})
	})

	return r
}

// Run serves until ctx is canceled, then drains.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
