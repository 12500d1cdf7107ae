package storage

import (
	"context"
	"file-drop/internal/core/domain"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string) (*domain.PutResult, error) {
	args := m.Called(ctx, key, r, size, contentType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PutResult), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ObjectInfo), args.Error(1)
}

func (m *MockStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, *time.Time, error) {
	args := m.Called(ctx, key, ttl)
	var expiresAt *time.Time
	if args.Get(1) != nil {
		expiresAt = args.Get(1).(*time.Time)
	}
	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockStore) InitMultipartUpload(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStore) PresignedPartURL(ctx context.Context, key string, partNumber int, uploadID string) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, key, partNumber, uploadID)
	var headers map[string]string
	if args.Get(1) != nil {
		headers = args.Get(1).(map[string]string)
	}
	var expiresAt *time.Time
	if args.Get(2) != nil {
		expiresAt = args.Get(2).(*time.Time)
	}
	return args.String(0), headers, expiresAt, args.Error(3)
}

func (m *MockStore) ListParts(ctx context.Context, key string, uploadID string, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error) {
	args := m.Called(ctx, key, uploadID, maxParts, partNumberMarker)
	return args.Get(0).([]domain.UploadPart), args.Int(1), args.Error(2)
}

func (m *MockStore) CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (*domain.PutResult, error) {
	args := m.Called(ctx, key, uploadID, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PutResult), args.Error(1)
}

func (m *MockStore) AbortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	args := m.Called(ctx, key, uploadID)
	return args.Error(0)
}
