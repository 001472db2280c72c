package teammigrations

import (
	"context"
	"fmt"

	teamdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/team/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating teams table...")

		if _, err := db.NewCreateTable().Model((*teamdb.Team)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("teams table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping teams table...")

		if _, err := db.NewDropTable().Model((*teamdb.Team)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("teams table dropped successfully!")
		return nil
	})
}
