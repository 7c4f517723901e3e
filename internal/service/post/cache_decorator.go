package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gallery-service/internal/cache"
	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
	"gallery-service/internal/model"
)

// PostServiceCacheDecorator keeps a short-lived copy of the post list
// in the cache and drops it after every successful mutation, so List
// always reflects the latest successful Publish or Delete.
type PostServiceCacheDecorator struct {
	service   Service
	postCache cache.PostCache
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewPostServiceCacheDecorator(
	service Service,
	postCache cache.PostCache,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (d *PostServiceCacheDecorator) Publish(ctx context.Context, draft *model.CreatePostDTO) (*model.Post, error) {
	result, err := d.service.Publish(ctx, draft)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.Invalidate(ctx); err != nil {
		d.log.Warn("Failed to invalidate post list cache after publish",
			slog.Int64("post_id", result.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("list_invalidate", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) List(ctx context.Context) ([]*model.Post, error) {
	start := time.Now()
	cached, err := d.postCache.GetList(ctx)
	if err == nil {
		d.metrics.RecordCacheOperationDuration("list_get", time.Since(start))
		return cached, nil
	}
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Post list cache read failed", slog.String("error", err.Error()))
	}

	posts, err := d.service.List(ctx)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.postCache.SetList(ctx, posts); err != nil {
		d.log.Warn("Failed to cache post list", slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("list_set", time.Since(setStart))

	return posts, nil
}

func (d *PostServiceCacheDecorator) Delete(ctx context.Context, id int64) error {
	if err := d.service.Delete(ctx, id); err != nil {
		return err
	}

	start := time.Now()
	if err := d.postCache.Invalidate(ctx); err != nil {
		d.log.Warn("Failed to invalidate post list cache after delete",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("list_invalidate", time.Since(start))

	return nil
}
