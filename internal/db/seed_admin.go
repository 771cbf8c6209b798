package db

import (
	"context"
	"errors"

	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/domain/user"
	"github.com/mtsblog/blogserver/internal/security"
)

type seedUserStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u user.User) (string, error)
}

// EnsureAdminUser seeds a bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. A no-op when the account already exists.
func EnsureAdminUser(ctx context.Context, users seedUserStore, hasher *security.Hasher, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	exists, err := users.Exists(ctx, cfg.AdminEmail)

	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	hash, err := hasher.Hash(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = users.Create(ctx, user.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	})

	// another instance may have seeded it first
	if errors.Is(err, user.ErrDuplicateEmail) {
		return nil
	}

	return err
}
