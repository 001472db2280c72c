package authservice

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Service verifies admin credentials and manages admin accounts.
type Service interface {
	VerifyAdminCredentials(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error)
	CreateAdmin(ctx context.Context, username, password string) error
	ListAdminUsernames(ctx context.Context) ([]string, error)
}
