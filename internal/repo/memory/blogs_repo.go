package memory

import (
	"context"
	"reflect"
	"sync"

	"github.com/mtsblog/blogserver/internal/domain/blog"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type BlogsRepo struct {
	mu    sync.RWMutex
	blogs map[string]blog.Document
}

func NewBlogsRepo() *BlogsRepo {
	return &BlogsRepo{blogs: make(map[string]blog.Document)}
}

func (r *BlogsRepo) List(ctx context.Context) ([]blog.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]blog.Document, 0, len(r.blogs))

	for _, doc := range r.blogs {
		out = append(out, clone(doc))
	}

	return out, nil
}

func (r *BlogsRepo) GetByID(ctx context.Context, id string) (blog.Document, error) {
	if _, err := mongodb.ParseID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.blogs[id]

	if !ok {
		return nil, blog.ErrNotFound
	}

	return clone(doc), nil
}

func (r *BlogsRepo) Insert(ctx context.Context, doc blog.Document) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := bson.NewObjectID().Hex()

	stored := clone(doc)
	stored["_id"] = id
	r.blogs[id] = stored

	return id, nil
}

func (r *BlogsRepo) Update(ctx context.Context, id string, fields blog.Document) (matched, modified int64, err error) {
	if _, err := mongodb.ParseID(id); err != nil {
		return 0, 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.blogs[id]

	if !ok {
		return 0, 0, blog.ErrNotFound
	}

	changed := int64(0)

	for k, v := range fields {
		if !reflect.DeepEqual(doc[k], v) {
			changed = 1
		}

		doc[k] = v
	}

	return 1, changed, nil
}

func (r *BlogsRepo) Delete(ctx context.Context, id string) error {
	if _, err := mongodb.ParseID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return blog.ErrNotFound
	}

	delete(r.blogs, id)

	return nil
}

func clone(doc blog.Document) blog.Document {
	out := make(blog.Document, len(doc))

	for k, v := range doc {
		out[k] = v
	}

	return out
}
