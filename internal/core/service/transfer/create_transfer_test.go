package transfer_test

import (
	"context"
	"file-drop/internal/adapters/eventbroker"
	"file-drop/internal/adapters/repository"
	"file-drop/internal/adapters/storage"
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/transfer"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultCfg = config.TransferConfig{
	DefaultRetentionDays: 7,
	MaxRetentionDays:     30,
	DownloadURLTTL:       3 * time.Minute,
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTransferService_CreateTransfer_FromCompletedSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockRemote := storage.NewMockStore()
	mockLocal := storage.NewMockStore()
	mockEvents := eventbroker.NewMockPublisher()
	service := transfer.NewTransferService(mockUow, mockRemote, mockLocal, mockEvents, defaultCfg, testLogger)

	fileID := uuid.New()
	session := &domain.UploadSession{
		FileID:     fileID,
		FileName:   "report.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		StorageKey: "prod/2026/08/28/t_x/f_y_report.pdf",
		Status:     domain.UploadSessionStatusCompleted,
	}

	mockUow.GetUploadSessionRepoMock().On("FindByFileID", ctx, fileID).Return(session, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetTransferRepoMock().On("Create", ctx, mock.Anything).Return(nil)
	mockEvents.On("Publish", ctx, mock.MatchedBy(func(e domain.TransferEvent) bool {
		return e.Type == domain.EventTypeTransferFinalized
	})).Return(nil)

	// Act
	tr, err := service.CreateTransfer(ctx, []domain.FileRef{{FileID: &fileID}}, 0, nil)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, domain.TransferStatusActive, tr.Status)
	assert.Len(t, tr.ShareLink, 32)
	assert.Len(t, tr.AccessKey, 16)
	assert.NotEqual(t, tr.ShareLink, tr.AccessKey)
	assert.Equal(t, int64(2048), tr.TotalSizeBytes)
	require.Len(t, tr.Files, 1)
	assert.Equal(t, fileID, tr.Files[0].ID)
	assert.Equal(t, domain.StorageTypeRemote, tr.Files[0].StorageType)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), tr.ExpiryDate, time.Minute)
	mockEvents.AssertExpectations(t)
}

func TestTransferService_CreateTransfer_IncompleteSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockEvents := eventbroker.NewMockPublisher()
	service := transfer.NewTransferService(mockUow, storage.NewMockStore(), storage.NewMockStore(), mockEvents, defaultCfg, testLogger)

	fileID := uuid.New()
	mockUow.GetUploadSessionRepoMock().On("FindByFileID", ctx, fileID).
		Return(&domain.UploadSession{FileID: fileID, Status: domain.UploadSessionStatusOpen}, nil)

	// Act
	tr, err := service.CreateTransfer(ctx, []domain.FileRef{{FileID: &fileID}}, 0, nil)

	// Assert
	assert.ErrorIs(t, err, domain.ErrIncompleteUpload)
	assert.Nil(t, tr)
	mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTransferService_CreateTransfer_NoFiles(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := transfer.NewTransferService(repository.NewMockUnitOfWork(), storage.NewMockStore(), storage.NewMockStore(), eventbroker.NewMockPublisher(), defaultCfg, testLogger)

	// Act
	tr, err := service.CreateTransfer(ctx, nil, 0, nil)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, tr)
}

func TestTransferService_CreateTransfer_RetentionTooLong(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := transfer.NewTransferService(repository.NewMockUnitOfWork(), storage.NewMockStore(), storage.NewMockStore(), eventbroker.NewMockPublisher(), defaultCfg, testLogger)

	refs := []domain.FileRef{{StorageKey: "local/key", OriginalName: "a.txt", SizeBytes: 1}}

	// Act
	tr, err := service.CreateTransfer(ctx, refs, defaultCfg.MaxRetentionDays+1, nil)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, tr)
}

func TestTransferService_CreateTransfer_WithPayment(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockEvents := eventbroker.NewMockPublisher()
	service := transfer.NewTransferService(mockUow, storage.NewMockStore(), storage.NewMockStore(), mockEvents, defaultCfg, testLogger)

	refs := []domain.FileRef{{StorageKey: "local/key", OriginalName: "a.txt", SizeBytes: 10, StorageType: domain.StorageTypeLocal}}

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetTransferRepoMock().On("Create", ctx, mock.Anything).Return(nil)
	mockEvents.On("Publish", ctx, mock.Anything).Return(nil)

	// Act
	tr, err := service.CreateTransfer(ctx, refs, 3, &domain.PaymentConfig{Amount: 500, Currency: "EUR"})

	// Assert
	require.NoError(t, err)
	assert.True(t, tr.IsPaymentRequired)
	assert.False(t, tr.IsPaid)
	assert.Equal(t, int64(500), tr.PaymentAmount)
	assert.Equal(t, "EUR", tr.PaymentCurrency)
}
