package mocks

import (
	"context"
	"io"

	"filebox/internal/model"
	"filebox/internal/service"
	"filebox/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, r io.Reader, filename, mimetype string, size int64, userID int64) (*model.File, error) {
	args := m.Called(ctx, r, filename, mimetype, size, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, key string) (*service.Download, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}

func (m *MockFileService) PresignedDownload(ctx context.Context, key string) (*service.PresignedDownload, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PresignedDownload), args.Error(1)
}

func (m *MockFileService) PresignedUpload(ctx context.Context, mimetype string) (*service.PresignedUpload, error) {
	args := m.Called(ctx, mimetype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PresignedUpload), args.Error(1)
}

func (m *MockFileService) CompletePresignedUpload(ctx context.Context, key, filename string, size int64, mimetype string, userID int64) (*model.File, error) {
	args := m.Called(ctx, key, filename, size, mimetype, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, userID int64) ([]model.File, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) Orphans(ctx context.Context) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}
