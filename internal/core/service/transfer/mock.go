package transfer

import (
	"context"
	"file-drop/internal/core/domain"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransferService is a mock implementation of TransferService
type MockTransferService struct {
	mock.Mock
}

// NewMockTransferService creates a new MockTransferService
func NewMockTransferService() *MockTransferService {
	return &MockTransferService{}
}

func (m *MockTransferService) CreateTransfer(ctx context.Context, refs []domain.FileRef, retentionDays int, payment *domain.PaymentConfig) (*domain.Transfer, error) {
	args := m.Called(ctx, refs, retentionDays, payment)
	var tr *domain.Transfer
	if args.Get(0) != nil {
		tr = args.Get(0).(*domain.Transfer)
	}
	return tr, args.Error(1)
}

func (m *MockTransferService) AuthorizeAccess(ctx context.Context, shareLink string, accessKey string) (*domain.Transfer, error) {
	args := m.Called(ctx, shareLink, accessKey)
	var tr *domain.Transfer
	if args.Get(0) != nil {
		tr = args.Get(0).(*domain.Transfer)
	}
	return tr, args.Error(1)
}

func (m *MockTransferService) RequestDownload(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (string, *time.Time, error) {
	args := m.Called(ctx, shareLink, accessKey, fileID)
	var expiresAt *time.Time
	if args.Get(1) != nil {
		expiresAt = args.Get(1).(*time.Time)
	}
	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockTransferService) DownloadFile(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (io.ReadCloser, *domain.File, error) {
	args := m.Called(ctx, shareLink, accessKey, fileID)
	var content io.ReadCloser
	if args.Get(0) != nil {
		content = args.Get(0).(io.ReadCloser)
	}
	var file *domain.File
	if args.Get(1) != nil {
		file = args.Get(1).(*domain.File)
	}
	return content, file, args.Error(2)
}
