package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/domain/user"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
)

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers returns every user; the password hash is projected out by the
// store adapter and additionally never serializes.
func (h *AuthHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	users, err := h.svc.ListUsers(cctx)

	if err != nil {
		h.log.Error("list users failed", "err", err)
		RespondInternal(ctx, "Failed to fetch users")
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (h *AuthHandler) UpdateRole(ctx *gin.Context) {
	var req RoleUpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.svc.UpdateRole(cctx, ctx.Param("id"), req.Role)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			RespondError(ctx, http.StatusBadRequest, "invalid_role", "Role must be user or admin", nil)
		case errors.Is(err, mongodb.ErrInvalidID):
			RespondError(ctx, http.StatusBadRequest, "invalid_id", "Malformed user id", nil)
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		default:
			h.log.Error("role update failed", "err", err)
			RespondInternal(ctx, "Failed to update role")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User role updated"})
}
