package uploader

import (
	"context"

	"gallery-service/internal/model"
)

//go:generate mockery --name Uploader --dir . --output ../../mocks/uploader --outpkg mocks --filename Uploader.go
type Uploader interface {
	// UploadAll writes every file to the blob store and returns their
	// public URLs in input order. Fail-fast: any failed upload fails
	// the whole batch.
	UploadAll(ctx context.Context, files []*model.FileUpload) ([]string, error)
}
