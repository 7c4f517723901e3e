package cache

import (
	"context"

	"gallery-service/internal/model"
)

//go:generate mockery --name PostCache --dir . --output ../../mocks/cache --outpkg mocks --filename PostCache.go
type PostCache interface {
	GetList(ctx context.Context) ([]*model.Post, error)
	SetList(ctx context.Context, posts []*model.Post) error
	Invalidate(ctx context.Context) error
}
