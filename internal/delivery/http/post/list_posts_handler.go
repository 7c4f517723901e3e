package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"gallery-service/internal/logger"
	"gallery-service/internal/model"
)

type PostLister interface {
	List(ctx context.Context) ([]*model.Post, error)
}

type ListPostsHandler struct {
	postService PostLister
	log         *logger.Logger
}

func NewListPostsHandler(postService PostLister, log *logger.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		log:         log,
	}
}

type ListPostsResponse struct {
	Posts []*model.Post `json:"posts"`
}

// ListPosts handles GET /v1/posts. Posts come back newest first.
func (h *ListPostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.log.Error("Failed to list posts", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "FetchFailed", "failed to fetch posts")
		return
	}

	if posts == nil {
		posts = []*model.Post{}
	}

	if err := writeJSON(w, http.StatusOK, ListPostsResponse{Posts: posts}); err != nil {
		h.log.Error("Failed to encode list posts response", slog.String("error", err.Error()))
	}
}
