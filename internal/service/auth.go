package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mtsblog/blogserver/internal/domain/user"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// UserStore is the contract over the users collection. The mongo adapter and
// the in-memory test adapter both satisfy it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u user.User) (string, error)
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context) ([]user.User, error)
}

type Hasher interface {
	Hash(plain string) (string, error)
	Check(hash, plain string) error
}

// Auth orchestrates registration, login and role management. It holds no
// per-request state.
type Auth struct {
	users  UserStore
	hasher Hasher
	log    *slog.Logger
}

func NewAuth(users UserStore, hasher Hasher, log *slog.Logger) *Auth {
	return &Auth{
		users:  users,
		hasher: hasher,
		log:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; empty means no role assigned yet
}

// Register validates the input, hashes the password and persists the user.
// Returns the identifier the store assigned.
func (s *Auth) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", ErrMissingField
	}

	if in.Role != "" && !user.ValidRole(in.Role) {
		return "", user.ErrInvalidRole
	}

	exists, err := s.users.Exists(ctx, in.Email)

	if err != nil {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	if exists {
		return "", user.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)

	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	// the unique email index backstops the existence check above, so two
	// concurrent registrations cannot both land
	id, err := s.users.Create(ctx, user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	})

	if err != nil {
		return "", err
	}

	s.log.Info("user registered", "email", in.Email, "id", id)

	return id, nil
}

// Login verifies the credentials and returns the sanitized user view.
func (s *Auth) Login(ctx context.Context, email, password string) (user.Sanitized, error) {
	if email == "" || password == "" {
		return user.Sanitized{}, ErrMissingField
	}

	found, err := s.users.GetByEmail(ctx, email)

	if err != nil {
		return user.Sanitized{}, err
	}

	err = s.hasher.Check(found.PasswordHash, password)

	if err != nil {
		return user.Sanitized{}, ErrIncorrectPassword
	}

	return found.Sanitize(), nil
}

// UpdateRole changes a user's role. The role is checked against the enum
// before the store is touched.
func (s *Auth) UpdateRole(ctx context.Context, id, role string) error {
	if !user.ValidRole(role) {
		return user.ErrInvalidRole
	}

	return s.users.UpdateRole(ctx, id, role)
}

// ListUsers returns all users; the password hash never leaves the store.
func (s *Auth) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}
