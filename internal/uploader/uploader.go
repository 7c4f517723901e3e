package uploader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	"gallery-service/internal/model"
	"gallery-service/internal/storage"
)

// keyNamespace is the blob store prefix for all gallery images.
const keyNamespace = "gallery"

type ImageUploader struct {
	storage     storage.Storage
	concurrency int
	log         *logger.Logger
}

func NewImageUploader(store storage.Storage, concurrency int, log *logger.Logger) *ImageUploader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImageUploader{
		storage:     store,
		concurrency: concurrency,
		log:         log,
	}
}

func (u *ImageUploader) UploadAll(ctx context.Context, files []*model.FileUpload) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			key := u.objectKey(file.Name)
			reader := bytes.NewReader(file.Data)
			if err := u.storage.Upload(ctx, key, reader, int64(len(file.Data)), file.ContentType); err != nil {
				u.log.Error("Failed to upload image",
					slog.String("key", key),
					slog.String("file", file.Name),
					slog.String("error", err.Error()))
				return custom_errors.ErrUploadFailed
			}
			// Slot by input index so concurrent completion order
			// cannot reorder the result.
			urls[i] = u.storage.PublicURL(key)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.log.Debug("Uploaded image batch", slog.Int("count", len(files)))
	return urls, nil
}

// objectKey derives a collision-resistant storage key. Two concurrent
// publishers must never produce the same key: a collision would
// silently overwrite a possibly still-referenced image.
func (u *ImageUploader) objectKey(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d-%s.%s", keyNamespace, time.Now().UnixNano(), uuid.NewString(), ext)
}
