package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidRole    = errors.New("invalid role")
)

// ValidRole reports whether role is one of the two known role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"` // never expose hash in JSON
	Role         string        `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt    time.Time     `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time     `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Sanitized is the user view returned by login: no id, no hash.
type Sanitized struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (u User) Sanitize() Sanitized {
	return Sanitized{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
