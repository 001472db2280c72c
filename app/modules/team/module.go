package team

import (
	"log/slog"

	teamservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/application"
	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// Module is the team module: team registration and roster imports. Like
// auth it has no bus surface, the HTTP layer calls it directly.
type Module struct {
	Service teamservice.Service
}

// NewModule wires the team service.
func NewModule(repo teamdb.Repository, logger *slog.Logger, tracer trace.Tracer) *Module {
	return &Module{
		Service: teamservice.NewTeamService(repo, logger, tracer),
	}
}
