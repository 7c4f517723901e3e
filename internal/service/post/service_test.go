package post_service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	prometheus_metrics "gallery-service/internal/metrics/prometheus"
	"gallery-service/internal/model"
	post_memory "gallery-service/internal/repository/post/memory"
	storage_memory "gallery-service/internal/storage/memory"
	"gallery-service/internal/uploader"
	post_repository_mock "gallery-service/mocks/post"
	storage_mock "gallery-service/mocks/storage"
	uploader_mock "gallery-service/mocks/uploader"
)

func newTestService(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader, store *storage_mock.Storage) *PostService {
	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	return NewPostService(postRepo, up, store, log, metrics)
}

func TestPostService_Publish(t *testing.T) {
	draftFiles := []*model.FileUpload{
		{Name: "fileA.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
	}
	uploadedURLs := []string{"https://cdn.test/images/gallery/1-abc.jpg"}

	tests := []struct {
		name        string
		mocks       func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader)
		draft       *model.CreatePostDTO
		want        *model.Post
		wantErrType error
	}{
		{
			name: "success with images",
			mocks: func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader) {
				up.On("UploadAll", mock.Anything, draftFiles).Return(uploadedURLs, nil)
				postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
					return p.Description == "hello" && len(p.Images) == 1 && p.Images[0] == uploadedURLs[0]
				})).Return(&model.Post{ID: 1, Description: "hello", Images: uploadedURLs}, nil)
			},
			draft: &model.CreatePostDTO{Description: "hello", Files: draftFiles},
			want:  &model.Post{ID: 1, Description: "hello", Images: uploadedURLs},
		},
		{
			name: "success description only",
			mocks: func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader) {
				up.On("UploadAll", mock.Anything, mock.Anything).Return([]string{}, nil)
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(&model.Post{ID: 2, Description: "text only", Images: []string{}}, nil)
			},
			draft: &model.CreatePostDTO{Description: "text only"},
			want:  &model.Post{ID: 2, Description: "text only", Images: []string{}},
		},
		{
			name:        "empty draft rejected",
			mocks:       func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader) {},
			draft:       &model.CreatePostDTO{},
			wantErrType: custom_errors.ErrEmptyPost,
		},
		{
			name: "upload failure creates no record",
			mocks: func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader) {
				up.On("UploadAll", mock.Anything, draftFiles).Return(nil, custom_errors.ErrUploadFailed)
			},
			draft:       &model.CreatePostDTO{Description: "hello", Files: draftFiles},
			wantErrType: custom_errors.ErrUploadFailed,
		},
		{
			name: "record insert failure after uploads",
			mocks: func(postRepo *post_repository_mock.Repository, up *uploader_mock.Uploader) {
				up.On("UploadAll", mock.Anything, draftFiles).Return(uploadedURLs, nil)
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(nil, custom_errors.ErrDatabaseQuery)
			},
			draft:       &model.CreatePostDTO{Description: "hello", Files: draftFiles},
			wantErrType: custom_errors.ErrPostCreateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(post_repository_mock.Repository)
			up := new(uploader_mock.Uploader)
			store := new(storage_mock.Storage)
			tt.mocks(postRepo, up)

			service := newTestService(postRepo, up, store)
			got, err := service.Publish(context.Background(), tt.draft)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			if errors.Is(tt.wantErrType, custom_errors.ErrEmptyPost) {
				up.AssertNotCalled(t, "UploadAll")
			}
			if errors.Is(tt.wantErrType, custom_errors.ErrUploadFailed) {
				postRepo.AssertNotCalled(t, "Create")
			}
			postRepo.AssertExpectations(t)
			up.AssertExpectations(t)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	const postID = int64(42)
	imageURLs := []string{
		"https://cdn.test/images/gallery/a.jpg",
		"https://cdn.test/images/gallery/b.jpg",
	}
	imageKeys := []string{"gallery/a.jpg", "gallery/b.jpg"}

	tests := []struct {
		name        string
		id          int64
		mocks       func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage)
		wantErrType error
	}{
		{
			name: "success with images",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Images: imageURLs}, nil)
				store.On("KeyFromURL", imageURLs[0]).Return(imageKeys[0], true)
				store.On("KeyFromURL", imageURLs[1]).Return(imageKeys[1], true)
				store.On("RemoveMany", mock.Anything, imageKeys).Return(nil)
				postRepo.On("Delete", mock.Anything, postID).Return(nil)
			},
		},
		{
			name: "success without images skips storage",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Description: "text only"}, nil)
				postRepo.On("Delete", mock.Anything, postID).Return(nil)
			},
		},
		{
			name:        "missing id rejected",
			id:          0,
			mocks:       func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {},
			wantErrType: custom_errors.ErrPostIDRequired,
		},
		{
			name: "post not found",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "fetch failure deletes nothing",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).Return(nil, custom_errors.ErrDatabaseQuery)
			},
			wantErrType: custom_errors.ErrPostFetchFailed,
		},
		{
			name: "storage failure leaves record intact",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Images: imageURLs}, nil)
				store.On("KeyFromURL", imageURLs[0]).Return(imageKeys[0], true)
				store.On("KeyFromURL", imageURLs[1]).Return(imageKeys[1], true)
				store.On("RemoveMany", mock.Anything, imageKeys).Return(errors.New("storage down"))
			},
			wantErrType: custom_errors.ErrStorageDeleteFailed,
		},
		{
			name: "record delete failure after storage",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Images: imageURLs}, nil)
				store.On("KeyFromURL", imageURLs[0]).Return(imageKeys[0], true)
				store.On("KeyFromURL", imageURLs[1]).Return(imageKeys[1], true)
				store.On("RemoveMany", mock.Anything, imageKeys).Return(nil)
				postRepo.On("Delete", mock.Anything, postID).Return(custom_errors.ErrDatabaseQuery)
			},
			wantErrType: custom_errors.ErrPostDeleteFailed,
		},
		{
			name: "concurrent delete won the race",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Description: "text only"}, nil)
				postRepo.On("Delete", mock.Anything, postID).Return(custom_errors.ErrPostNotFound)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "foreign url dropped from storage delete",
			id:   postID,
			mocks: func(postRepo *post_repository_mock.Repository, store *storage_mock.Storage) {
				foreign := "https://elsewhere.example/x.jpg"
				postRepo.On("GetByID", mock.Anything, postID).
					Return(&model.Post{ID: postID, Images: []string{imageURLs[0], foreign}}, nil)
				store.On("KeyFromURL", imageURLs[0]).Return(imageKeys[0], true)
				store.On("KeyFromURL", foreign).Return("", false)
				store.On("RemoveMany", mock.Anything, []string{imageKeys[0]}).Return(nil)
				postRepo.On("Delete", mock.Anything, postID).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(post_repository_mock.Repository)
			up := new(uploader_mock.Uploader)
			store := new(storage_mock.Storage)
			tt.mocks(postRepo, store)

			service := newTestService(postRepo, up, store)
			err := service.Delete(context.Background(), tt.id)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
			} else {
				assert.NoError(t, err)
			}

			switch {
			case errors.Is(tt.wantErrType, custom_errors.ErrPostIDRequired):
				postRepo.AssertNotCalled(t, "GetByID")
			case errors.Is(tt.wantErrType, custom_errors.ErrPostNotFound) && tt.name == "post not found":
				store.AssertNotCalled(t, "RemoveMany")
				postRepo.AssertNotCalled(t, "Delete")
			case errors.Is(tt.wantErrType, custom_errors.ErrPostFetchFailed):
				store.AssertNotCalled(t, "RemoveMany")
				postRepo.AssertNotCalled(t, "Delete")
			case errors.Is(tt.wantErrType, custom_errors.ErrStorageDeleteFailed):
				postRepo.AssertNotCalled(t, "Delete")
			}
			if tt.name == "success without images skips storage" {
				store.AssertNotCalled(t, "RemoveMany")
			}

			postRepo.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestPostService_Delete_StorageBeforeRecord(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	up := new(uploader_mock.Uploader)
	store := new(storage_mock.Storage)

	url := "https://cdn.test/images/gallery/a.jpg"
	var callOrder []string

	postRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&model.Post{ID: 7, Images: []string{url}}, nil)
	store.On("KeyFromURL", url).Return("gallery/a.jpg", true)
	store.On("RemoveMany", mock.Anything, []string{"gallery/a.jpg"}).
		Run(func(args mock.Arguments) { callOrder = append(callOrder, "storage_remove") }).
		Return(nil)
	postRepo.On("Delete", mock.Anything, int64(7)).
		Run(func(args mock.Arguments) { callOrder = append(callOrder, "record_delete") }).
		Return(nil)

	service := newTestService(postRepo, up, store)
	err := service.Delete(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []string{"storage_remove", "record_delete"}, callOrder)
}

func TestPostService_List(t *testing.T) {
	t.Run("newest first passthrough", func(t *testing.T) {
		postRepo := new(post_repository_mock.Repository)
		posts := []*model.Post{{ID: 5}, {ID: 3}, {ID: 1}}
		postRepo.On("List", mock.Anything).Return(posts, nil)

		service := newTestService(postRepo, new(uploader_mock.Uploader), new(storage_mock.Storage))
		got, err := service.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("store failure", func(t *testing.T) {
		postRepo := new(post_repository_mock.Repository)
		postRepo.On("List", mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)

		service := newTestService(postRepo, new(uploader_mock.Uploader), new(storage_mock.Storage))
		got, err := service.List(context.Background())

		assert.ErrorIs(t, err, custom_errors.ErrPostFetchFailed)
		assert.Nil(t, got)
	})
}

// End-to-end run of the whole lifecycle against the in-memory
// repository and storage with the real upload pipeline.
func TestPostService_PublishAndDelete(t *testing.T) {
	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	store := storage_memory.NewStorage("https://cdn.test/images", log)
	repo := post_memory.NewPostRepository(log)
	up := uploader.NewImageUploader(store, 2, log)
	service := NewPostService(repo, up, store, log, metrics)

	published, err := service.Publish(context.Background(), &model.CreatePostDTO{
		Description: "hello",
		Files: []*model.FileUpload{
			{Name: "fileA.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")},
		},
	})
	require.NoError(t, err)
	require.Len(t, published.Images, 1)
	assert.True(t, strings.HasPrefix(published.Images[0], "https://cdn.test/images/gallery/"))
	assert.Equal(t, 1, store.Len())

	posts, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)

	// Storage deletion failure must leave the record fetchable and retryable.
	store.SimulateRemoveError(errors.New("storage down"))
	err = service.Delete(context.Background(), published.ID)
	assert.ErrorIs(t, err, custom_errors.ErrStorageDeleteFailed)

	stillThere, err := repo.GetByID(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.Images, stillThere.Images)

	// Retry succeeds once storage recovers, leaving no blob behind.
	store.SimulateRemoveError(nil)
	require.NoError(t, service.Delete(context.Background(), published.ID))
	assert.Equal(t, 0, store.Len())

	posts, err = service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 0)

	// Double delete reports the post as gone.
	err = service.Delete(context.Background(), published.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}
