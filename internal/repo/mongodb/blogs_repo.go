package mongodb

import (
	"context"
	"errors"

	"github.com/mtsblog/blogserver/internal/domain/blog"
	"github.com/mtsblog/blogserver/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type BlogsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewBlogsRepo(database *mongo.Database, prom *observability.Prom) *BlogsRepo {
	return &BlogsRepo{
		coll: database.Collection("blogs"),
		prom: prom,
	}
}

func (r *BlogsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *BlogsRepo) List(ctx context.Context) ([]blog.Document, error) {
	docs := []blog.Document{}

	err := r.observe("blogs.list", func() error {
		cursor, findErr := r.coll.Find(ctx, bson.M{})

		if findErr != nil {
			return findErr
		}

		return cursor.All(ctx, &docs)
	})

	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *BlogsRepo) GetByID(ctx context.Context, id string) (blog.Document, error) {
	oid, err := ParseID(id)

	if err != nil {
		return nil, err
	}

	var doc blog.Document

	err = r.observe("blogs.get_by_id", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blog.ErrNotFound
		}

		return nil, err
	}

	return doc, nil
}

func (r *BlogsRepo) Insert(ctx context.Context, doc blog.Document) (string, error) {
	id := bson.NewObjectID()
	doc["_id"] = id

	err := r.observe("blogs.insert", func() error {
		_, insertErr := r.coll.InsertOne(ctx, doc)
		return insertErr
	})

	if err != nil {
		return "", err
	}

	return id.Hex(), nil
}

// Update merges the given fields into an existing document ($set, not a
// replace). Returns the match/modify counts so the handler can echo them.
func (r *BlogsRepo) Update(ctx context.Context, id string, fields blog.Document) (matched, modified int64, err error) {
	oid, err := ParseID(id)

	if err != nil {
		return 0, 0, err
	}

	var res *mongo.UpdateResult

	err = r.observe("blogs.update", func() error {
		var updateErr error

		res, updateErr = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})

		return updateErr
	})

	if err != nil {
		return 0, 0, err
	}

	if res.MatchedCount == 0 {
		return 0, 0, blog.ErrNotFound
	}

	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *BlogsRepo) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)

	if err != nil {
		return err
	}

	var res *mongo.DeleteResult

	err = r.observe("blogs.delete", func() error {
		var deleteErr error

		res, deleteErr = r.coll.DeleteOne(ctx, bson.M{"_id": oid})

		return deleteErr
	})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return blog.ErrNotFound
	}

	return nil
}
