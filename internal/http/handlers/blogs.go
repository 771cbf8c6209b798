package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/domain/blog"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
)

// BlogStore is the contract over the blogs collection.
type BlogStore interface {
	List(ctx context.Context) ([]blog.Document, error)
	GetByID(ctx context.Context, id string) (blog.Document, error)
	Insert(ctx context.Context, doc blog.Document) (string, error)
	Update(ctx context.Context, id string, fields blog.Document) (matched, modified int64, err error)
	Delete(ctx context.Context, id string) error
}

type BlogsHandler struct {
	store BlogStore
	log   *slog.Logger
}

func NewBlogsHandler(store BlogStore, log *slog.Logger) *BlogsHandler {
	return &BlogsHandler{
		store: store,
		log:   log,
	}
}

func (h *BlogsHandler) ListBlogs(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	docs, err := h.store.List(cctx)

	if err != nil {
		h.log.Error("list blogs failed", "err", err)
		RespondInternal(ctx, "Could not list blogs")
		return
	}

	ctx.JSON(http.StatusOK, docs)
}

func (h *BlogsHandler) GetBlogByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	doc, err := h.store.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		h.respondStoreError(ctx, err, "Could not fetch blog")
		return
	}

	ctx.JSON(http.StatusOK, doc)
}

func (h *BlogsHandler) CreateBlog(ctx *gin.Context) {
	doc, ok := bindDocument(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	id, err := h.store.Insert(cctx, doc)

	if err != nil {
		h.log.Error("insert blog failed", "err", err)
		RespondInternal(ctx, "Could not create blog")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

// UpdateBlog merges the given fields into the document; fields absent from
// the body are left untouched.
func (h *BlogsHandler) UpdateBlog(ctx *gin.Context) {
	fields, ok := bindDocument(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	matched, modified, err := h.store.Update(cctx, ctx.Param("id"), fields)

	if err != nil {
		h.respondStoreError(ctx, err, "Failed to update blog")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

func (h *BlogsHandler) DeleteBlog(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.store.Delete(cctx, ctx.Param("id"))

	if err != nil {
		h.respondStoreError(ctx, err, "Could not delete blog")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Blog deleted"})
}

func (h *BlogsHandler) respondStoreError(ctx *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, mongodb.ErrInvalidID):
		RespondError(ctx, http.StatusBadRequest, "invalid_id", "Malformed blog id", nil)
	case errors.Is(err, blog.ErrNotFound):
		RespondNotFound(ctx, "Blog not found")
	default:
		h.log.Error("blog store error", "err", err)
		RespondInternal(ctx, internalMsg)
	}
}

// bindDocument binds a schemaless blog body. The body must be a non-empty
// JSON object and must not try to supply the store-assigned _id.
func bindDocument(ctx *gin.Context) (blog.Document, bool) {
	var doc blog.Document

	if !BindJSON(ctx, &doc) {
		return nil, false
	}

	if len(doc) == 0 {
		RespondBadRequest(ctx, "Request body must not be empty", nil)
		return nil, false
	}

	if _, ok := doc["_id"]; ok {
		RespondBadRequest(ctx, "Field _id is assigned by the server", nil)
		return nil, false
	}

	return doc, true
}
