package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"filebox/internal/model"
	repoMocks "filebox/internal/repository/mocks"
	"filebox/internal/storage"
	storeMocks "filebox/internal/storage/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPresignExpiry = 60 * time.Second

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("test content")
				mStore.On("Put", ctx, mock.MatchedBy(isUUID), r, storage.PutObjectOptions{
					Size:        12,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "test-document.pdf"},
				}).Return(storage.ObjectInfo{Size: 12, ContentType: "application/pdf"}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(f *model.File) bool {
					return isUUID(f.Key) &&
						f.Filename == "test-document.pdf" &&
						f.Size == 12 &&
						f.Mimetype == "application/pdf" &&
						f.UploadedBy == 1
				})).Return(&model.File{ID: 1, Key: "stored-key", Filename: "test-document.pdf", Size: 12, Mimetype: "application/pdf", UploadedBy: 1}, nil)

				return r
			},
		},
		{
			name: "validation error - nil reader",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name: "storage error leaves no metadata",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "repository error with successful rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(isUUID)).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockFileRepository)
			svc := NewFileService(mStore, mRepo, testPresignExpiry)

			r := tt.setupMocks(mStore, mRepo)

			file, err := svc.Upload(ctx, r, "test-document.pdf", "application/pdf", 12, 1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, file)
				assert.Equal(t, "test-document.pdf", file.Filename)
				assert.Equal(t, int64(12), file.Size)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestFileService_Upload_FreshKeysPerCall(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockFileRepository)
	svc := NewFileService(mStore, mRepo, testPresignExpiry)

	var keys []string
	mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			keys = append(keys, args.String(1))
		}).
		Return(storage.ObjectInfo{}, nil)
	mRepo.On("Create", ctx, mock.Anything).Return(&model.File{ID: 1}, nil)

	// Same bytes twice still produce two distinct keys.
	_, err := svc.Upload(ctx, strings.NewReader("same"), "a.txt", "text/plain", 4, 1)
	require.NoError(t, err)
	_, err = svc.Upload(ctx, strings.NewReader("same"), "a.txt", "text/plain", 4, 1)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestFileService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(mStore, nil, testPresignExpiry)

		body := io.NopCloser(strings.NewReader("test content"))
		mStore.On("Get", ctx, "some-key").
			Return(body, storage.ObjectInfo{ContentType: "application/pdf", Size: 12}, nil)

		dl, err := svc.Download(ctx, "some-key")

		require.NoError(t, err)
		assert.Equal(t, "application/pdf", dl.ContentType)
		assert.Equal(t, int64(12), dl.ContentLength)

		content, err := io.ReadAll(dl.Body)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(content))
	})

	t.Run("missing content type falls back to octet-stream", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(mStore, nil, testPresignExpiry)

		body := io.NopCloser(strings.NewReader("x"))
		mStore.On("Get", ctx, "some-key").
			Return(body, storage.ObjectInfo{Size: 1}, nil)

		dl, err := svc.Download(ctx, "some-key")

		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", dl.ContentType)
	})

	t.Run("empty key", func(t *testing.T) {
		svc := NewFileService(nil, nil, testPresignExpiry)
		_, err := svc.Download(ctx, "")
		assert.ErrorIs(t, err, ErrKeyRequired)
	})

	t.Run("storage miss propagates", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(mStore, nil, testPresignExpiry)

		mStore.On("Get", ctx, "missing-key").
			Return(nil, storage.ObjectInfo{}, errors.New("no such key"))

		_, err := svc.Download(ctx, "missing-key")
		assert.Error(t, err)
	})
}

func TestFileService_PresignedDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("with filename enrichment", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo, testPresignExpiry)

		mStore.On("PresignGet", ctx, "known-key", testPresignExpiry).
			Return("https://bucket.example.com/known-key?sig=abc", nil)
		mRepo.On("FindByKey", ctx, "known-key").
			Return(&model.File{Key: "known-key", Filename: "report.pdf"}, nil)

		res, err := svc.PresignedDownload(ctx, "known-key")

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/known-key?sig=abc", res.URL)
		assert.Equal(t, "known-key", res.Key)
		assert.Equal(t, "report.pdf", res.Filename)
	})

	t.Run("enrichment failure still returns URL", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo, testPresignExpiry)

		mStore.On("PresignGet", ctx, "unrecorded-key", testPresignExpiry).
			Return("https://bucket.example.com/unrecorded-key?sig=abc", nil)
		mRepo.On("FindByKey", ctx, "unrecorded-key").
			Return(nil, sql.ErrNoRows)

		res, err := svc.PresignedDownload(ctx, "unrecorded-key")

		require.NoError(t, err)
		assert.NotEmpty(t, res.URL)
		assert.Empty(t, res.Filename)
	})

	t.Run("presign failure fails the call", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(mStore, nil, testPresignExpiry)

		mStore.On("PresignGet", ctx, "any-key", testPresignExpiry).
			Return("", errors.New("presign fail"))

		_, err := svc.PresignedDownload(ctx, "any-key")
		assert.Error(t, err)
	})
}

func TestFileService_PresignedUpload(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewFileService(mStore, nil, testPresignExpiry)

	mStore.On("PresignPut", ctx, mock.MatchedBy(isUUID), "application/pdf", testPresignExpiry).
		Return("https://bucket.example.com/upload?sig=abc", nil)

	first, err := svc.PresignedUpload(ctx, "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, first.URL)
	assert.True(t, isUUID(first.Key))

	second, err := svc.PresignedUpload(ctx, "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, second.Key)
}

func TestFileService_CompletePresignedUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("records caller-supplied metadata without verification", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo, testPresignExpiry)

		mRepo.On("Create", ctx, mock.MatchedBy(func(f *model.File) bool {
			return f.Key == "claimed-key" &&
				f.Filename == "f.pdf" &&
				f.Size == 1024000 &&
				f.Mimetype == "application/pdf" &&
				f.UploadedBy == 3
		})).Return(&model.File{ID: 9, Key: "claimed-key", Filename: "f.pdf", Size: 1024000, Mimetype: "application/pdf", UploadedBy: 3}, nil)

		file, err := svc.CompletePresignedUpload(ctx, "claimed-key", "f.pdf", 1024000, "application/pdf", 3)

		require.NoError(t, err)
		assert.Equal(t, int64(9), file.ID)
		// No Get/List expectations on the store: the claim is not checked.
		mStore.AssertExpectations(t)
	})

	t.Run("empty key", func(t *testing.T) {
		svc := NewFileService(nil, nil, testPresignExpiry)
		_, err := svc.CompletePresignedUpload(ctx, "", "f.pdf", 1, "application/pdf", 3)
		assert.ErrorIs(t, err, ErrKeyRequired)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(nil, mRepo, testPresignExpiry)

		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.CompletePresignedUpload(ctx, "k", "f.pdf", 1, "application/pdf", 3)
		assert.Error(t, err)
	})
}

func TestFileService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockFileRepository)
	svc := NewFileService(nil, mRepo, testPresignExpiry)

	mRepo.On("FindByUser", ctx, int64(1)).Return([]model.File{
		{ID: 2, Key: "key-2"},
		{ID: 1, Key: "key-1"},
	}, nil)
	mRepo.On("FindByUser", ctx, int64(2)).Return([]model.File{}, nil)

	files, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// Another user's listing is empty, not an error.
	files, err = svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileService_Orphans(t *testing.T) {
	ctx := context.Background()

	t.Run("flags unrecorded objects", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo, testPresignExpiry)

		mStore.On("List", ctx).Return([]storage.ObjectInfo{
			{Key: "recorded"},
			{Key: "abandoned"},
		}, nil)
		mRepo.On("FindByKey", ctx, "recorded").Return(&model.File{Key: "recorded"}, nil)
		mRepo.On("FindByKey", ctx, "abandoned").Return(nil, sql.ErrNoRows)

		orphans, err := svc.Orphans(ctx)

		require.NoError(t, err)
		require.Len(t, orphans, 1)
		assert.Equal(t, "abandoned", orphans[0].Key)
	})

	t.Run("empty bucket yields empty slice", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(mStore, nil, testPresignExpiry)

		mStore.On("List", ctx).Return([]storage.ObjectInfo{}, nil)

		orphans, err := svc.Orphans(ctx)
		require.NoError(t, err)
		assert.NotNil(t, orphans)
		assert.Empty(t, orphans)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo, testPresignExpiry)

		mStore.On("List", ctx).Return([]storage.ObjectInfo{{Key: "k"}}, nil)
		mRepo.On("FindByKey", ctx, "k").Return(nil, errors.New("db fail"))

		_, err := svc.Orphans(ctx)
		assert.Error(t, err)
	})
}
