package post_service

import (
	"context"
	"errors"
	"log/slog"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
	"gallery-service/internal/model"
	post_repository "gallery-service/internal/repository/post"
	"gallery-service/internal/storage"
	"gallery-service/internal/uploader"
)

type PostService struct {
	postRepo post_repository.Repository
	uploader uploader.Uploader
	storage  storage.Storage
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewPostService(
	postRepo post_repository.Repository,
	imageUploader uploader.Uploader,
	store storage.Storage,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		uploader: imageUploader,
		storage:  store,
		log:      log,
		metrics:  metricsProvider,
	}
}

// Publish uploads the draft's files and records the post. The record
// is only inserted after every upload succeeded, so a post is never
// visible with a partially uploaded image set.
func (s *PostService) Publish(ctx context.Context, draft *model.CreatePostDTO) (*model.Post, error) {
	if draft.Description == "" && len(draft.Files) == 0 {
		s.log.Debug("Rejected empty draft")
		s.metrics.IncrementPostOperations("publish", false)
		return nil, custom_errors.ErrEmptyPost
	}

	urls, err := s.uploader.UploadAll(ctx, draft.Files)
	if err != nil {
		s.log.Error("Failed to upload images for post",
			slog.Int("files", len(draft.Files)),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("publish", false)
		return nil, custom_errors.ErrUploadFailed
	}

	createdPost, err := s.postRepo.Create(ctx, &model.Post{
		Description: draft.Description,
		Images:      urls,
	})
	if err != nil {
		// The uploaded objects stay behind as unreferenced orphans;
		// no record points at them, so consistency holds.
		s.log.Error("Failed to insert post record after upload",
			slog.Int("images", len(urls)),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("publish", false)
		return nil, custom_errors.ErrPostCreateFailed
	}

	s.metrics.IncrementPostOperations("publish", true)
	s.log.Info("Published post",
		slog.Int64("id", createdPost.ID),
		slog.Int("images", len(createdPost.Images)))
	return createdPost, nil
}

func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("list", false)
		return nil, custom_errors.ErrPostFetchFailed
	}

	s.metrics.IncrementPostOperations("list", true)
	return posts, nil
}

// Delete removes a post's images from the blob store, then its record.
// Storage goes first: if image deletion fails the record stays intact
// and the whole operation can be retried; if the final record delete
// fails the leftover is a harmless, re-deletable dangling record.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		s.metrics.IncrementPostOperations("delete", false)
		return custom_errors.ErrPostIDRequired
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to fetch post before delete",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return custom_errors.ErrPostFetchFailed
	}

	if keys := s.storageKeys(post.Images); len(keys) > 0 {
		if err := s.storage.RemoveMany(ctx, keys); err != nil {
			// Record deliberately left intact so the delete stays retryable.
			s.log.Error("Failed to delete images from storage",
				slog.Int64("id", id),
				slog.Int("keys", len(keys)),
				slog.String("error", err.Error()))
			s.metrics.IncrementPostOperations("delete", false)
			return custom_errors.ErrStorageDeleteFailed
		}
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			// A concurrent delete won the race; the post is gone either way.
			s.log.Debug("Post already deleted", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post record",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return custom_errors.ErrPostDeleteFailed
	}

	s.metrics.IncrementPostOperations("delete", true)
	s.log.Info("Deleted post", slog.Int64("id", id))
	return nil
}

// storageKeys derives blob store keys from image URLs. URLs without
// the known public prefix were never ours: they are dropped rather
// than aborting the whole deletion.
func (s *PostService) storageKeys(urls []string) []string {
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		key, ok := s.storage.KeyFromURL(url)
		if !ok {
			s.log.Warn("Skipping image with unknown URL prefix", slog.String("url", url))
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
