package bundb

import (
	"context"
	"database/sql"
	"fmt"

	authdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/infrastructure/repositories"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService bundles the per-module repositories over one bun.DB.
type DBService struct {
	StatLogDB *statlogdb.StatLogDBImpl
	MatchDB   *matchdb.MatchDBImpl
	TeamDB    *teamdb.TeamDBImpl
	AdminDB   *authdb.AdminDBImpl
	db        *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService opens the Postgres connection and wires the module
// repositories.
func NewBunDBService(ctx context.Context, dsn string) (*DBService, error) {
	sqldb, err := pgConn(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&statlogdb.StatEvent{})
	db.RegisterModel(&matchdb.Match{})
	db.RegisterModel(&matchdb.UnlockAudit{})
	db.RegisterModel(&teamdb.Team{})
	db.RegisterModel(&authdb.Admin{})

	return &DBService{
		StatLogDB: &statlogdb.StatLogDBImpl{DB: db},
		MatchDB:   &matchdb.MatchDBImpl{DB: db},
		TeamDB:    &teamdb.TeamDBImpl{DB: db},
		AdminDB:   &authdb.AdminDBImpl{DB: db},
		db:        db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
