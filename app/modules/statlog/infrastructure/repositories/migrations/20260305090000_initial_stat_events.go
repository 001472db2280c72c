package statlogmigrations

import (
	"context"
	"fmt"

	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating stat_events table...")

		if _, err := db.NewCreateTable().Model((*statlogdb.StatEvent)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*statlogdb.StatEvent)(nil)).
			Index("idx_stat_events_match_player_set").
			Column("match_id", "player_id", "set_number").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("stat_events table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping stat_events table...")

		if _, err := db.NewDropTable().Model((*statlogdb.StatEvent)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("stat_events table dropped successfully!")
		return nil
	})
}
