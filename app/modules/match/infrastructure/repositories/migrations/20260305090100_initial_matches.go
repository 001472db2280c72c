package matchmigrations

import (
	"context"
	"fmt"

	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches and match_unlock_audits tables...")

		if _, err := db.NewCreateTable().Model((*matchdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*matchdb.UnlockAudit)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*matchdb.UnlockAudit)(nil)).
			Index("idx_match_unlock_audits_match").
			Column("match_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("match tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches and match_unlock_audits tables...")

		if _, err := db.NewDropTable().Model((*matchdb.UnlockAudit)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*matchdb.Match)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("match tables dropped successfully!")
		return nil
	})
}
