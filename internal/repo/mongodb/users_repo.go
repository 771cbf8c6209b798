package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/mtsblog/blogserver/internal/domain/user"
	"github.com/mtsblog/blogserver/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UsersRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewUsersRepo(database *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		coll: database.Collection("users"),
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Exists(ctx context.Context, email string) (bool, error) {
	err := r.observe("users.exists", func() error {
		return r.coll.FindOne(
			ctx,
			bson.M{"email": email},
			options.FindOne().SetProjection(bson.M{"_id": 1}),
		).Err()
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Create inserts a new user and returns its assigned identifier. The unique
// email index makes a concurrent duplicate fail here with ErrDuplicateEmail.
func (r *UsersRepo) Create(ctx context.Context, u user.User) (string, error) {
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	err := r.observe("users.create", func() error {
		_, insertErr := r.coll.InsertOne(ctx, u)
		return insertErr
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", user.ErrDuplicateEmail
		}

		return "", err
	}

	return u.ID.Hex(), nil
}

// UpdateRole sets the role of the user with the given identifier. A zero
// match count means no such user; an unchanged role on an existing user is
// still a success.
func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) error {
	oid, err := ParseID(id)

	if err != nil {
		return err
	}

	var res *mongo.UpdateResult

	err = r.observe("users.update_role", func() error {
		var updateErr error

		res, updateErr = r.coll.UpdateOne(
			ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
		)

		return updateErr
	})

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}

	return nil
}

// List returns all users with the password hash projected out at the store.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	users := []user.User{}

	err := r.observe("users.list", func() error {
		cursor, findErr := r.coll.Find(
			ctx,
			bson.M{},
			options.Find().SetProjection(bson.M{"password_hash": 0}),
		)

		if findErr != nil {
			return findErr
		}

		return cursor.All(ctx, &users)
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}
