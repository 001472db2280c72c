package auth

import (
	"log/slog"
	"time"

	authservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/application"
	authjwt "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// Module is the auth module: admin credential verification and session
// tokens. It carries no router, other modules and the HTTP layer call it
// directly.
type Module struct {
	Service  authservice.Service
	Tokens   authjwt.Provider
	TokenTTL time.Duration
}

// NewModule wires the auth service and token provider.
func NewModule(repo authdb.Repository, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger, tracer trace.Tracer) *Module {
	return &Module{
		Service:  authservice.NewAuthService(repo, logger, tracer),
		Tokens:   authjwt.NewProvider(jwtSecret),
		TokenTTL: tokenTTL,
	}
}
