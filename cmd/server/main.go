package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	redis_cache "gallery-service/internal/cache/redis"
	"gallery-service/internal/config"
	delivery_http "gallery-service/internal/delivery/http"
	post_http "gallery-service/internal/delivery/http/post"
	metrics_server "gallery-service/internal/delivery/metrics"
	"gallery-service/internal/logger"
	prometheus_metrics "gallery-service/internal/metrics/prometheus"
	post_postgres "gallery-service/internal/repository/post/postgres"
	post_service "gallery-service/internal/service/post"
	minio_storage "gallery-service/internal/storage/minio"
	"gallery-service/internal/uploader"
)

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := runMigrations(cfg.Database, dsn); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	blobStorage, err := minio_storage.NewClient(cfg.Storage, log, metrics)
	if err != nil {
		log.Error("Failed to create blob storage client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := redis_cache.NewClient(cfg.Redis, log, metrics)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	postCache := redis_cache.NewPostCache(redisClient, log)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	imageUploader := uploader.NewImageUploader(blobStorage, cfg.Upload.Concurrency, log)

	originalPostService := post_service.NewPostService(postRepo, imageUploader, blobStorage, log, metrics)
	postService := post_service.NewPostServiceCacheDecorator(originalPostService, postCache, log, metrics)

	postAPI := post_http.NewPostHTTPService(postService, cfg.Upload, log)
	router := delivery_http.NewRouter(postAPI, log, metrics)
	httpServer := delivery_http.NewServer(router, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}

func runMigrations(cfg config.Database, dsn string) error {
	// The pgx/v5 migrate driver registers under the pgx5 scheme.
	migrateDSN := "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")

	m, err := migrate.New("file://"+cfg.MigrationsPath, migrateDSN)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
