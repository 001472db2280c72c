package authmigrations

import (
	"context"
	"fmt"

	authdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating admins table...")

		if _, err := db.NewCreateTable().Model((*authdb.Admin)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("admins table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping admins table...")

		if _, err := db.NewDropTable().Model((*authdb.Admin)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("admins table dropped successfully!")
		return nil
	})
}
