package post_http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gallery-service/internal/custom_errors"
	service_mock "gallery-service/mocks/service"
)

func TestDeletePostHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mocks      func(postService *service_mock.Service)
		wantStatus int
		wantCode   string
	}{
		{
			name: "deletes existing post",
			path: "/v1/posts/42",
			mocks: func(postService *service_mock.Service) {
				postService.On("Delete", mock.Anything, int64(42)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "non-numeric id",
			path:       "/v1/posts/abc",
			mocks:      func(postService *service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "InvalidRequest",
		},
		{
			name:       "zero id",
			path:       "/v1/posts/0",
			mocks:      func(postService *service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "InvalidRequest",
		},
		{
			name: "post not found",
			path: "/v1/posts/42",
			mocks: func(postService *service_mock.Service) {
				postService.On("Delete", mock.Anything, int64(42)).
					Return(custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "PostNotFound",
		},
		{
			name: "fetch failure",
			path: "/v1/posts/42",
			mocks: func(postService *service_mock.Service) {
				postService.On("Delete", mock.Anything, int64(42)).
					Return(custom_errors.ErrPostFetchFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "FetchFailed",
		},
		{
			name: "storage delete failure",
			path: "/v1/posts/42",
			mocks: func(postService *service_mock.Service) {
				postService.On("Delete", mock.Anything, int64(42)).
					Return(custom_errors.ErrStorageDeleteFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "StorageDeleteFailed",
		},
		{
			name: "record delete failure",
			path: "/v1/posts/42",
			mocks: func(postService *service_mock.Service) {
				postService.On("Delete", mock.Anything, int64(42)).
					Return(custom_errors.ErrPostDeleteFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "PostDeleteFailed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postService := new(service_mock.Service)
			tt.mocks(postService)

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			rec := httptest.NewRecorder()
			newTestRouter(t, postService, defaultUploadConfig()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeErrorResponse(t, rec)["error"])
			}
			if tt.wantStatus == http.StatusBadRequest {
				postService.AssertNotCalled(t, "Delete")
			}
			postService.AssertExpectations(t)
		})
	}
}
