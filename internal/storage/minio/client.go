package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gallery-service/internal/config"
	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
)

type Client struct {
	client       *minio.Client
	bucket       string
	publicPrefix string
	log          *logger.Logger
	metrics      metrics.Provider
}

func NewClient(cfg config.Storage, log *logger.Logger, metricsProvider metrics.Provider) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Error("Failed to create minio client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Error("Failed to check storage bucket",
			slog.String("bucket", cfg.Bucket),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check storage bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("storage bucket %q does not exist", cfg.Bucket)
	}

	log.Info("Connected to blob storage",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket))

	return &Client{
		client:       mc,
		bucket:       cfg.Bucket,
		publicPrefix: strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/" + cfg.Bucket + "/",
		log:          log,
		metrics:      metricsProvider,
	}, nil
}

func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	start := time.Now()
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	c.metrics.RecordStorageOperationDuration("upload", time.Since(start))
	if err != nil {
		c.metrics.IncrementStorageOperations("upload", false)
		c.log.Error("Failed to upload object",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to upload object %q: %w", key, err)
	}

	c.metrics.IncrementStorageOperations("upload", true)
	c.log.Debug("Uploaded object", slog.String("key", key), slog.Int64("size", size))
	return nil
}

func (c *Client) RemoveMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	start := time.Now()
	failed := 0
	for result := range c.client.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if result.Err != nil {
			failed++
			c.log.Error("Failed to remove object",
				slog.String("key", result.ObjectName),
				slog.String("error", result.Err.Error()))
		}
	}
	c.metrics.RecordStorageOperationDuration("remove", time.Since(start))

	if failed > 0 {
		c.metrics.IncrementStorageOperations("remove", false)
		return fmt.Errorf("failed to remove %d of %d objects", failed, len(keys))
	}

	c.metrics.IncrementStorageOperations("remove", true)
	c.log.Debug("Removed objects", slog.Int("count", len(keys)))
	return nil
}

func (c *Client) PublicURL(key string) string {
	return c.publicPrefix + key
}

func (c *Client) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, c.publicPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, c.publicPrefix)
	if key == "" {
		return "", false
	}
	return key, true
}
