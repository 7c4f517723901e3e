package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
)

type PostDeleter interface {
	Delete(ctx context.Context, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         *logger.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log *logger.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type DeletePostRequestInternal struct {
	ID int64 `validate:"required,gt=0"`
}

// DeletePost handles DELETE /v1/posts/{postID}.
func (h *DeletePostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "post id must be an integer")
		return
	}

	validationReq := &DeletePostRequestInternal{ID: id}
	if err := h.validate.Struct(validationReq); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostIDRequired):
			writeError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		case errors.Is(err, custom_errors.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "PostNotFound", "post not found")
		case errors.Is(err, custom_errors.ErrPostFetchFailed):
			writeError(w, http.StatusInternalServerError, "FetchFailed",
				"failed to fetch post before deletion")
		case errors.Is(err, custom_errors.ErrStorageDeleteFailed):
			// Record intact; the caller can safely retry.
			writeError(w, http.StatusInternalServerError, "StorageDeleteFailed",
				"failed to delete images from storage")
		case errors.Is(err, custom_errors.ErrPostDeleteFailed):
			writeError(w, http.StatusInternalServerError, "PostDeleteFailed",
				"failed to delete post record")
		default:
			h.log.Error("Unexpected error in delete post handler",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "InternalServerError",
				"an internal error occurred")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
