package post_service

import (
	"context"

	"gallery-service/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks/service --outpkg mocks --filename PostService.go
type Service interface {
	Publish(ctx context.Context, draft *model.CreatePostDTO) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	Delete(ctx context.Context, id int64) error
}
