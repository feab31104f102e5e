package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

func main() {
	// .env é opcional
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if created, err := dbpkg.SeedAdmin(ctx, db, cfg); err != nil {
		logger.Error("failed to seed admin", "error", err)
		os.Exit(1)
	} else if created {
		logger.Info("admin user created", "email", cfg.AdminEmail)
	}

	redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		// sem cache a aplicação continua, só lendo direto do banco
		logger.Warn("redis unavailable, cache disabled", "error", err)
		redisClient = nil
	}

	r := gin.New()
	r.Use(gin.Recovery())

	shutdownQueues, err := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Logger: logger,
		Redis:  redisClient,
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	shutdownQueues()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("server stopped")
}
