package authdb

import (
	"context"
	"errors"
)

// ErrAdminNotFound is returned when no admin exists for a username.
var ErrAdminNotFound = errors.New("admin not found")

// Repository handles admin credential persistence.
type Repository interface {
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) error
	ListAdminUsernames(ctx context.Context) ([]string, error)
}
