package authdb

import "context"

// FakeRepository allows overriding each repository method in tests.
type FakeRepository struct {
	GetAdminByUsernameFn func(ctx context.Context, username string) (*Admin, error)
	CreateAdminFn        func(ctx context.Context, username, passwordHash string) error
	ListAdminUsernamesFn func(ctx context.Context) ([]string, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	if f.GetAdminByUsernameFn != nil {
		return f.GetAdminByUsernameFn(ctx, username)
	}
	return nil, ErrAdminNotFound
}

func (f *FakeRepository) CreateAdmin(ctx context.Context, username, passwordHash string) error {
	if f.CreateAdminFn != nil {
		return f.CreateAdminFn(ctx, username, passwordHash)
	}
	return nil
}

func (f *FakeRepository) ListAdminUsernames(ctx context.Context) ([]string, error) {
	if f.ListAdminUsernamesFn != nil {
		return f.ListAdminUsernamesFn(ctx)
	}
	return nil, nil
}
