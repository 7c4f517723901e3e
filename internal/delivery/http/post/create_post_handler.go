package post_http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"gallery-service/internal/config"
	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	"gallery-service/internal/model"
)

type PostPublisher interface {
	Publish(ctx context.Context, draft *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService PostPublisher
	validate    *validator.Validate
	maxFileSize int64
	maxFiles    int
	log         *logger.Logger
}

func NewCreatePostHandler(postService PostPublisher, validate *validator.Validate, uploadCfg config.Upload, log *logger.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
		maxFileSize: uploadCfg.MaxFileSize,
		maxFiles:    uploadCfg.MaxFiles,
		log:         log,
	}
}

type CreatePostRequestInternal struct {
	Description string `validate:"omitempty,max=2000"`
}

// CreatePost handles POST /v1/posts.
// Request body: multipart/form-data with a "description" field and
// zero or more "images" files.
func (h *CreatePostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	// Cap the whole request: all files at their individual maximum
	// plus headroom for the description and multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*int64(h.maxFiles)+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid multipart request body")
		return
	}

	validationReq := &CreatePostRequestInternal{
		Description: r.FormValue("description"),
	}
	if err := h.validate.Struct(validationReq); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", fmt.Sprintf("invalid request: %v", err))
		return
	}

	var fileHeaders []*multipart.FileHeader
	if r.MultipartForm != nil {
		fileHeaders = r.MultipartForm.File["images"]
	}

	if len(fileHeaders) > h.maxFiles {
		writeError(w, http.StatusBadRequest, "TooManyFiles",
			fmt.Sprintf("at most %d images per post", h.maxFiles))
		return
	}

	files := make([]*model.FileUpload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := h.readFile(header)
		if err != nil {
			var reqErr *requestError
			if errors.As(err, &reqErr) {
				writeError(w, reqErr.status, reqErr.code, reqErr.message)
				return
			}
			h.log.Error("Failed to read uploaded file",
				slog.String("file", header.Filename),
				slog.String("error", err.Error()))
			writeError(w, http.StatusBadRequest, "InvalidRequest", "failed to read uploaded file")
			return
		}
		files = append(files, file)
	}

	createdPost, err := h.postService.Publish(r.Context(), &model.CreatePostDTO{
		Description: validationReq.Description,
		Files:       files,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrEmptyPost):
			writeError(w, http.StatusBadRequest, "EmptyPost",
				"post must have a description or at least one image")
		case errors.Is(err, custom_errors.ErrUploadFailed):
			writeError(w, http.StatusInternalServerError, "UploadFailed",
				"failed to upload one or more images")
		case errors.Is(err, custom_errors.ErrPostCreateFailed):
			writeError(w, http.StatusInternalServerError, "PostCreateFailed",
				"failed to create post record")
		default:
			h.log.Error("Unexpected error in create post handler", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "InternalServerError",
				"an internal error occurred")
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, createdPost); err != nil {
		h.log.Error("Failed to encode create post response", slog.String("error", err.Error()))
	}
}

func (h *CreatePostHandler) readFile(header *multipart.FileHeader) (*model.FileUpload, error) {
	if header.Size > h.maxFileSize {
		return nil, &requestError{
			status:  http.StatusRequestEntityTooLarge,
			code:    "FileTooLarge",
			message: fmt.Sprintf("file %q exceeds the %d byte limit", header.Filename, h.maxFileSize),
		}
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &requestError{
			status:  http.StatusBadRequest,
			code:    "UnsupportedFileType",
			message: fmt.Sprintf("file %q is not an image", header.Filename),
		}
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			h.log.Warn("Failed to close uploaded file", slog.String("error", closeErr.Error()))
		}
	}()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &model.FileUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}
