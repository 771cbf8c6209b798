package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/http/handlers"
	"github.com/mtsblog/blogserver/internal/http/middlewares"
	"github.com/mtsblog/blogserver/internal/observability"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
	"github.com/mtsblog/blogserver/internal/security"
	"github.com/mtsblog/blogserver/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(log *slog.Logger, cfg config.Config, database *mongo.Database, prom *observability.Prom, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(cfg.CORS) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORS))
	}

	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("blogserver"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// greeting
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Hello! This is MTS Blog Server")
	})

	// health
	ping := func(ctx context.Context) error {
		if database == nil {
			return nil
		}

		return database.Client().Ping(ctx, readpref.Primary())
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire up repositories and the auth service
	usersRepo := mongodb.NewUsersRepo(database, prom)
	blogsRepo := mongodb.NewBlogsRepo(database, prom)

	hasher := security.NewHasher(cfg.BcryptCost)
	authSvc := service.NewAuth(usersRepo, hasher, log)

	authHandler := handlers.NewAuthHandler(authSvc, log)
	blogsHandler := handlers.NewBlogsHandler(blogsRepo, log)

	r.GET("/blogs", blogsHandler.ListBlogs)
	r.GET("/blogs/:id", blogsHandler.GetBlogByID)
	r.POST("/blogs", blogsHandler.CreateBlog)
	r.PUT("/blogs/:id", blogsHandler.UpdateBlog)
	r.DELETE("/blogs/:id", blogsHandler.DeleteBlog)

	r.POST("/users", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/users", authHandler.ListUsers)
	r.PUT("/users/:id/role", authHandler.UpdateRole)

	return r
}
