package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// AdminDBImpl is the bun-backed admin credential store.
type AdminDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*AdminDBImpl)(nil)

// GetAdminByUsername fetches an admin row by username.
func (db *AdminDBImpl) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	admin := new(Admin)
	err := db.DB.NewSelect().
		Model(admin).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return admin, nil
}

// CreateAdmin inserts a new admin credential.
func (db *AdminDBImpl) CreateAdmin(ctx context.Context, username, passwordHash string) error {
	admin := &Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if _, err := db.DB.NewInsert().Model(admin).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// ListAdminUsernames returns every admin username, ordered.
func (db *AdminDBImpl) ListAdminUsernames(ctx context.Context) ([]string, error) {
	var usernames []string
	err := db.DB.NewSelect().
		Model((*Admin)(nil)).
		Column("username").
		Order("username ASC").
		Scan(ctx, &usernames)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return usernames, nil
}
