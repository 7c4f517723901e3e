package custom_errors

import "errors"

var (
	// Validation errors
	ErrPostIDRequired = errors.New("post id is required")
	ErrEmptyPost      = errors.New("post must have a description or at least one image")

	ErrPostNotFound = errors.New("post not found")

	// Stage errors: each one identifies where in the publish/delete
	// flow the failure happened, which in turn tells the caller what
	// state the stores were left in.
	ErrUploadFailed        = errors.New("image upload failed")
	ErrPostFetchFailed     = errors.New("failed to fetch post records")
	ErrPostCreateFailed    = errors.New("failed to create post record")
	ErrPostDeleteFailed    = errors.New("failed to delete post record")
	ErrStorageDeleteFailed = errors.New("failed to delete images from storage")

	// Infrastructure errors
	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")
	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheQuery    = errors.New("cache query error")
)
