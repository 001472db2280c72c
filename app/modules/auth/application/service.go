package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	authdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/observability/attr"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks admin credentials against stored bcrypt hashes.
type AuthService struct {
	repo   authdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

var _ Service = (*AuthService)(nil)

// dummyHash is a valid bcrypt hash used to equalize timing for unknown
// usernames.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// NewAuthService creates the auth service.
func NewAuthService(repo authdb.Repository, logger *slog.Logger, tracer trace.Tracer) *AuthService {
	return &AuthService{
		repo:   repo,
		logger: logger,
		tracer: tracer,
	}
}

// VerifyAdminCredentials compares password against the stored hash for
// username. Unknown username and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) VerifyAdminCredentials(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.VerifyAdminCredentials")
	defer span.End()

	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, authdb.ErrAdminNotFound) {
			// Burn a bcrypt comparison anyway so unknown usernames take
			// the same time as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Failed to load admin credential",
			attr.String("username", username),
			attr.Error(err),
		)
		return nil, fmt.Errorf("failed to load admin credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &sharedtypes.AdminCredential{Username: admin.Username}, nil
}

// CreateAdmin hashes the password and stores a new admin credential.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.CreateAdmin")
	defer span.End()

	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.CreateAdmin(ctx, username, string(hash)); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Admin credential created", attr.String("username", username))
	return nil
}

// ListAdminUsernames returns the usernames of all admins.
func (s *AuthService) ListAdminUsernames(ctx context.Context) ([]string, error) {
	return s.repo.ListAdminUsernames(ctx)
}
