package post_service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	prometheus_metrics "gallery-service/internal/metrics/prometheus"
	"gallery-service/internal/model"
	cache_mock "gallery-service/mocks/cache"
	service_mock "gallery-service/mocks/service"
)

func newTestDecorator(inner *service_mock.Service, postCache *cache_mock.PostCache) Service {
	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	return NewPostServiceCacheDecorator(inner, postCache, log, metrics)
}

func TestPostServiceCacheDecorator_List(t *testing.T) {
	posts := []*model.Post{{ID: 3}, {ID: 1}}

	t.Run("cache hit skips inner service", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		postCache.On("GetList", mock.Anything).Return(posts, nil)

		got, err := newTestDecorator(inner, postCache).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, posts, got)
		inner.AssertNotCalled(t, "List")
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		postCache.On("GetList", mock.Anything).Return(nil, custom_errors.ErrCacheMiss)
		inner.On("List", mock.Anything).Return(posts, nil)
		postCache.On("SetList", mock.Anything, posts).Return(nil)

		got, err := newTestDecorator(inner, postCache).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, posts, got)
		postCache.AssertExpectations(t)
	})

	t.Run("cache read failure falls back to inner service", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		postCache.On("GetList", mock.Anything).Return(nil, custom_errors.ErrCacheQuery)
		inner.On("List", mock.Anything).Return(posts, nil)
		postCache.On("SetList", mock.Anything, posts).Return(nil)

		got, err := newTestDecorator(inner, postCache).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("inner failure is not cached", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		postCache.On("GetList", mock.Anything).Return(nil, custom_errors.ErrCacheMiss)
		inner.On("List", mock.Anything).Return(nil, custom_errors.ErrPostFetchFailed)

		got, err := newTestDecorator(inner, postCache).List(context.Background())

		assert.ErrorIs(t, err, custom_errors.ErrPostFetchFailed)
		assert.Nil(t, got)
		postCache.AssertNotCalled(t, "SetList")
	})

	t.Run("cache write failure still returns posts", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		postCache.On("GetList", mock.Anything).Return(nil, custom_errors.ErrCacheMiss)
		inner.On("List", mock.Anything).Return(posts, nil)
		postCache.On("SetList", mock.Anything, posts).Return(custom_errors.ErrCacheQuery)

		got, err := newTestDecorator(inner, postCache).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})
}

func TestPostServiceCacheDecorator_Publish(t *testing.T) {
	draft := &model.CreatePostDTO{Description: "hello"}
	published := &model.Post{ID: 1, Description: "hello"}

	t.Run("success invalidates list cache", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		inner.On("Publish", mock.Anything, draft).Return(published, nil)
		postCache.On("Invalidate", mock.Anything).Return(nil)

		got, err := newTestDecorator(inner, postCache).Publish(context.Background(), draft)

		require.NoError(t, err)
		assert.Equal(t, published, got)
		postCache.AssertExpectations(t)
	})

	t.Run("failure leaves cache untouched", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		inner.On("Publish", mock.Anything, draft).Return(nil, custom_errors.ErrPostCreateFailed)

		got, err := newTestDecorator(inner, postCache).Publish(context.Background(), draft)

		assert.ErrorIs(t, err, custom_errors.ErrPostCreateFailed)
		assert.Nil(t, got)
		postCache.AssertNotCalled(t, "Invalidate")
	})

	t.Run("invalidation failure does not fail the publish", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		inner.On("Publish", mock.Anything, draft).Return(published, nil)
		postCache.On("Invalidate", mock.Anything).Return(errors.New("redis down"))

		got, err := newTestDecorator(inner, postCache).Publish(context.Background(), draft)

		require.NoError(t, err)
		assert.Equal(t, published, got)
	})
}

func TestPostServiceCacheDecorator_Delete(t *testing.T) {
	t.Run("success invalidates list cache", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		inner.On("Delete", mock.Anything, int64(1)).Return(nil)
		postCache.On("Invalidate", mock.Anything).Return(nil)

		err := newTestDecorator(inner, postCache).Delete(context.Background(), 1)

		require.NoError(t, err)
		postCache.AssertExpectations(t)
	})

	t.Run("failure leaves cache untouched", func(t *testing.T) {
		inner := new(service_mock.Service)
		postCache := new(cache_mock.PostCache)
		inner.On("Delete", mock.Anything, int64(1)).Return(custom_errors.ErrStorageDeleteFailed)

		err := newTestDecorator(inner, postCache).Delete(context.Background(), 1)

		assert.ErrorIs(t, err, custom_errors.ErrStorageDeleteFailed)
		postCache.AssertNotCalled(t, "Invalidate")
	})
}
