package redis

import (
	"context"
	"time"

	"gallery-service/internal/logger"
	"gallery-service/internal/model"
)

const (
	postListKey = "gallery:posts"
	postListTTL = 1 * time.Minute
)

type PostCache struct {
	client *Client
	log    *logger.Logger
}

func NewPostCache(client *Client, log *logger.Logger) *PostCache {
	return &PostCache{
		client: client,
		log:    log,
	}
}

func (c *PostCache) GetList(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	if err := c.client.Get(ctx, postListKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *PostCache) SetList(ctx context.Context, posts []*model.Post) error {
	return c.client.Set(ctx, postListKey, posts, postListTTL)
}

func (c *PostCache) Invalidate(ctx context.Context) error {
	return c.client.Delete(ctx, postListKey)
}
