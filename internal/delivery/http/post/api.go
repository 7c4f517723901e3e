package post_http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"gallery-service/internal/config"
	"gallery-service/internal/logger"
	post_service "gallery-service/internal/service/post"
)

var validate = validator.New()

type PostHTTPService struct {
	log               *logger.Logger
	createPostHandler *CreatePostHandler
	listPostsHandler  *ListPostsHandler
	deletePostHandler *DeletePostHandler
}

func NewPostHTTPService(postService post_service.Service, uploadCfg config.Upload, log *logger.Logger) *PostHTTPService {
	return &PostHTTPService{
		log:               log,
		createPostHandler: NewCreatePostHandler(postService, validate, uploadCfg, log),
		listPostsHandler:  NewListPostsHandler(postService, log),
		deletePostHandler: NewDeletePostHandler(postService, validate, log),
	}
}

func (s *PostHTTPService) RegisterRoutes(r chi.Router) {
	r.Post("/v1/posts", s.createPostHandler.CreatePost)
	r.Get("/v1/posts", s.listPostsHandler.ListPosts)
	r.Delete("/v1/posts/{postID}", s.deletePostHandler.DeletePost)
}
