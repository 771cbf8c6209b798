package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/domain/user"
	"github.com/mtsblog/blogserver/internal/service"
)

// AuthService is what the HTTP boundary needs from the auth layer.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (user.Sanitized, error)
	UpdateRole(ctx context.Context, id, role string) error
	ListUsers(ctx context.Context) ([]user.User, error)
}

type AuthHandler struct {
	svc AuthService
	log *slog.Logger
}

func NewAuthHandler(svc AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: log,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	id, err := h.svc.Register(cctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})

	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			RespondError(ctx, http.StatusBadRequest, "duplicate_user", "User already exists", nil)
		case errors.Is(err, user.ErrInvalidRole):
			RespondError(ctx, http.StatusBadRequest, "invalid_role", "Role must be user or admin", nil)
		case errors.Is(err, service.ErrMissingField):
			RespondBadRequest(ctx, "Name, email and password are required", nil)
		default:
			h.log.Error("registration failed", "err", err)
			RespondInternal(ctx, "Registration failed")
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  id,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the lookup plus the bcrypt comparison
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	view, err := h.svc.Login(cctx, req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, service.ErrIncorrectPassword):
			RespondUnAuthorized(ctx, "incorrect_password", "Incorrect password")
		case errors.Is(err, service.ErrMissingField):
			RespondBadRequest(ctx, "Email and password are required", nil)
		default:
			h.log.Error("login failed", "err", err)
			RespondInternal(ctx, "Internal server error")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    view,
	})
}
