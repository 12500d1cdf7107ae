package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) StartChunkedUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, totalChunks int) (*domain.UploadSession, error) {
	args := m.Called(ctx, transferID, fileName, contentType, sizeBytes, totalChunks)
	var session *domain.UploadSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.UploadSession)
	}
	return session, args.Error(1)
}

func (m *MockUploadService) SaveChunk(ctx context.Context, sessionID uuid.UUID, chunkIndex int, r io.Reader, size int64) (*domain.ChunkAck, error) {
	args := m.Called(ctx, sessionID, chunkIndex, r, size)
	var ack *domain.ChunkAck
	if args.Get(0) != nil {
		ack = args.Get(0).(*domain.ChunkAck)
	}
	return ack, args.Error(1)
}

func (m *MockUploadService) StartMultipartUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, partCount int) (*domain.UploadSession, []domain.UploadPart, error) {
	args := m.Called(ctx, transferID, fileName, contentType, sizeBytes, partCount)
	var session *domain.UploadSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.UploadSession)
	}
	var parts []domain.UploadPart
	if args.Get(1) != nil {
		parts = args.Get(1).([]domain.UploadPart)
	}
	return session, parts, args.Error(2)
}

func (m *MockUploadService) ListParts(ctx context.Context, sessionID uuid.UUID, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error) {
	args := m.Called(ctx, sessionID, maxParts, partNumberMarker)
	var parts []domain.UploadPart
	if args.Get(0) != nil {
		parts = args.Get(0).([]domain.UploadPart)
	}
	return parts, args.Int(1), args.Error(2)
}

func (m *MockUploadService) CompleteMultipartUpload(ctx context.Context, sessionID uuid.UUID, parts []domain.UploadPart) (*domain.FileDescriptor, error) {
	args := m.Called(ctx, sessionID, parts)
	var descriptor *domain.FileDescriptor
	if args.Get(0) != nil {
		descriptor = args.Get(0).(*domain.FileDescriptor)
	}
	return descriptor, args.Error(1)
}
