package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mtsblog/blogserver/internal/config"
	"github.com/mtsblog/blogserver/internal/db"
	httpx "github.com/mtsblog/blogserver/internal/http"
	"github.com/mtsblog/blogserver/internal/observability"
	"github.com/mtsblog/blogserver/internal/repo/mongodb"
	"github.com/mtsblog/blogserver/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// a missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing
	initCtx, cancelInit := config.WithTimeout(10 * time.Second)
	defer cancelInit()

	shutdownTracer, err := observability.InitTracer(initCtx, "blogserver", cfg.OtelEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = nil
	}

	// connect to the document store once, before accepting requests
	client, err := db.Connect(initCtx, cfg.Mongo.URI)

	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	database := client.Database(cfg.Mongo.DBName)

	err = db.EnsureIndexes(initCtx, database)

	if err != nil {
		log.Error("index setup failed", "err", err)
		os.Exit(1)
	}

	// metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	// optional bootstrap admin
	usersRepo := mongodb.NewUsersRepo(database, prom)
	hasher := security.NewHasher(cfg.BcryptCost)

	err = db.EnsureAdminUser(initCtx, usersRepo, hasher, cfg)

	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// set up routes
	router := httpx.NewRouter(log, cfg, database, prom, reg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "db", cfg.Mongo.DBName)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if shutdownTracer != nil {
			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}

		if err := client.Disconnect(ctx); err != nil {
			log.Error("mongo disconnect failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
