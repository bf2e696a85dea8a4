package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codev-directory-backend/config"
	_ "codev-directory-backend/docs" // Important for Swagger
	v1 "codev-directory-backend/internal/delivery/http/v1"
	"codev-directory-backend/internal/repository/cache"
	"codev-directory-backend/internal/repository/postgres"
	"codev-directory-backend/internal/scheduler"
	"codev-directory-backend/internal/usecase"
	"codev-directory-backend/pkg/database"
	"codev-directory-backend/pkg/logger"
	"codev-directory-backend/pkg/redis"
	"codev-directory-backend/pkg/validation"
)

// @title           Codev Directory API
// @version         1.0
// @description     Ranked and filtered directory of codev profiles.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting codev directory backend", "port", cfg.Port)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, serving directory without cache", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	codevRepo := postgres.NewCodevRepository(dbPool)
	snapshotCache := cache.NewCodevCache(redis.Client(), cfg.DirectoryCacheTTL)

	// 6. Setup UseCases
	validate := validation.New()
	codevUC := usecase.NewCodevUsecase(codevRepo, snapshotCache, validate, usecase.CodevOptions{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		ExportMaxRows:   cfg.ExportMaxRows,
	})
	healthUC := usecase.NewHealthUsecase(codevRepo, snapshotCache)

	// 7. Setup Snapshot Refresh
	refresher := scheduler.New(codevUC, cfg.DirectoryRefreshSpec)
	if err := refresher.Start(ctx); err != nil {
		logger.Log.Error("Failed to start directory refresh", "error", err)
		os.Exit(1)
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CodevUC:  codevUC,
		HealthUC: healthUC,
		Redis:    redis.Client(),
		Config:   cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stop()
	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
