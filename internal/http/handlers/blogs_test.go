package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mtsblog/blogserver/internal/domain/blog"
	"github.com/mtsblog/blogserver/internal/http/handlers"
	"github.com/mtsblog/blogserver/internal/observability"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
)

// Fake implementation of the handlers.BlogStore interface

type fakeBlogStore struct {
	listFn   func(ctx context.Context) ([]blog.Document, error)
	getFn    func(ctx context.Context, id string) (blog.Document, error)
	insertFn func(ctx context.Context, doc blog.Document) (string, error)
	updateFn func(ctx context.Context, id string, fields blog.Document) (int64, int64, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeBlogStore) List(ctx context.Context) ([]blog.Document, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []blog.Document{}, nil
}

func (f *fakeBlogStore) GetByID(ctx context.Context, id string) (blog.Document, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return blog.Document{}, nil
}

func (f *fakeBlogStore) Insert(ctx context.Context, doc blog.Document) (string, error) {
	if f.insertFn != nil {
		return f.insertFn(ctx, doc)
	}
	return "", nil
}

func (f *fakeBlogStore) Update(ctx context.Context, id string, fields blog.Document) (int64, int64, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, fields)
	}
	return 0, 0, nil
}

func (f *fakeBlogStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func newBlogsHandler(store *fakeBlogStore) *handlers.BlogsHandler {
	return handlers.NewBlogsHandler(store, observability.NewLogger("test"))
}

func TestListBlogsHandler(t *testing.T) {
	store := &fakeBlogStore{
		listFn: func(ctx context.Context) ([]blog.Document, error) {
			return []blog.Document{{"title": "first"}, {"title": "second"}}, nil
		},
	}

	r := setupRouter(http.MethodGet, "/blogs", newBlogsHandler(store).ListBlogs)

	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var docs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &docs); err != nil {
		t.Fatalf("expected a JSON array, got %s", w.Body.String())
	}

	if len(docs) != 2 {
		t.Fatalf("got %d blogs, want 2", len(docs))
	}
}

func TestGetBlogHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		storeSetUp     func(*fakeBlogStore)
		wantStatusCode int
	}{
		{
			name: "success",
			id:   "65f000000000000000000001",
			storeSetUp: func(f *fakeBlogStore) {
				f.getFn = func(ctx context.Context, id string) (blog.Document, error) {
					return blog.Document{"_id": id, "title": "hello"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			id:   "65f000000000000000000009",
			storeSetUp: func(f *fakeBlogStore) {
				f.getFn = func(ctx context.Context, id string) (blog.Document, error) {
					return nil, blog.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "malformed_id",
			id:   "not-an-id",
			storeSetUp: func(f *fakeBlogStore) {
				f.getFn = func(ctx context.Context, id string) (blog.Document, error) {
					return nil, mongodb.ErrInvalidID
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_fault",
			id:   "65f000000000000000000001",
			storeSetUp: func(f *fakeBlogStore) {
				f.getFn = func(ctx context.Context, id string) (blog.Document, error) {
					return nil, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeBlogStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			r := setupRouter(http.MethodGet, "/blogs/:id", newBlogsHandler(store).GetBlogByID)

			req := httptest.NewRequest(http.MethodGet, "/blogs/"+tt.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestCreateBlogHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeBlogStore)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"title":"hello","content":"world"}`,
			storeSetUp: func(f *fakeBlogStore) {
				f.insertFn = func(ctx context.Context, doc blog.Document) (string, error) {
					if doc["title"] != "hello" {
						t.Fatalf("document not passed through: %+v", doc)
					}
					return "65f000000000000000000001", nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "empty_object",
			body:           `{}`,
			storeSetUp:     func(f *fakeBlogStore) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "empty_body",
			body:           ``,
			storeSetUp:     func(f *fakeBlogStore) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "client_supplied_id",
			body:           `{"_id":"boom","title":"x"}`,
			storeSetUp:     func(f *fakeBlogStore) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_fault",
			body: `{"title":"hello"}`,
			storeSetUp: func(f *fakeBlogStore) {
				f.insertFn = func(ctx context.Context, doc blog.Document) (string, error) {
					return "", errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeBlogStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			r := setupRouter(http.MethodPost, "/blogs", newBlogsHandler(store).CreateBlog)

			w := doJSON(t, r, http.MethodPost, "/blogs", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateBlogHandler(t *testing.T) {
	store := &fakeBlogStore{
		updateFn: func(ctx context.Context, id string, fields blog.Document) (int64, int64, error) {
			return 1, 1, nil
		},
	}

	r := setupRouter(http.MethodPut, "/blogs/:id", newBlogsHandler(store).UpdateBlog)

	w := doJSON(t, r, http.MethodPut, "/blogs/65f000000000000000000001", `{"title":"updated"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Matched  int64 `json:"matchedCount"`
		Modified int64 `json:"modifiedCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
	}

	if resp.Matched != 1 || resp.Modified != 1 {
		t.Fatalf("unexpected counts: %s", w.Body.String())
	}
}

func TestUpdateBlogHandlerNotFound(t *testing.T) {
	store := &fakeBlogStore{
		updateFn: func(ctx context.Context, id string, fields blog.Document) (int64, int64, error) {
			return 0, 0, blog.ErrNotFound
		},
	}

	r := setupRouter(http.MethodPut, "/blogs/:id", newBlogsHandler(store).UpdateBlog)

	w := doJSON(t, r, http.MethodPut, "/blogs/65f000000000000000000009", `{"title":"updated"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteBlogHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		storeSetUp     func(*fakeBlogStore)
		wantStatusCode int
	}{
		{
			name:           "success",
			id:             "65f000000000000000000001",
			storeSetUp:     func(f *fakeBlogStore) {},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			id:   "65f000000000000000000009",
			storeSetUp: func(f *fakeBlogStore) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return blog.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "malformed_id",
			id:   "not-an-id",
			storeSetUp: func(f *fakeBlogStore) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return mongodb.ErrInvalidID
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeBlogStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			r := setupRouter(http.MethodDelete, "/blogs/:id", newBlogsHandler(store).DeleteBlog)

			req := httptest.NewRequest(http.MethodDelete, "/blogs/"+tt.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
