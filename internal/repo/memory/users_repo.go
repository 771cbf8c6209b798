package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mtsblog/blogserver/internal/domain/user"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UsersRepo is an in-memory stand-in for the mongo users adapter. It keeps
// the same sentinel errors and id semantics so the service layer cannot tell
// the difference.
type UsersRepo struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by hex id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{users: make(map[string]user.User)}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Exists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)

	if err == nil {
		return true, nil
	}

	return false, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return "", user.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.users[u.ID.Hex()] = u

	return u.ID.Hex(), nil
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) error {
	if _, err := mongodb.ParseID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]

	if !ok {
		return user.ErrNotFound
	}

	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u

	return nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))

	for _, u := range r.users {
		u.PasswordHash = "" // projected out, like the store adapter
		out = append(out, u)
	}

	return out, nil
}
