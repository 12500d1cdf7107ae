package lifecycle_test

import (
	"context"
	"errors"
	"file-drop/internal/adapters/eventbroker"
	"file-drop/internal/adapters/repository"
	"file-drop/internal/adapters/storage"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/lifecycle"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLifecycleService_PurgeLocalFiles_DeletesAndRetires(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	mockUow := repository.NewMockUnitOfWork()
	mockLocal := storage.NewMockStore()
	mockEvents := eventbroker.NewMockPublisher()
	service := lifecycle.NewLifecycleService(mockUow, storage.NewMockStore(), mockLocal, mockEvents, defaultCfg, testLogger)

	tr := expiredTransfer(domain.StorageTypeLocal)
	tr.Status = domain.TransferStatusExpired

	mockUow.GetTransferRepoMock().On("FindExpiredPastGrace", ctx, now.Add(-defaultCfg.GracePeriod)).
		Return([]domain.Transfer{tr}, nil)
	mockLocal.On("Delete", mock.Anything, tr.Files[0].StorageKey).Return(nil)
	mockUow.GetTransferRepoMock().On("UpdateStatus", ctx, tr.ID, domain.TransferStatusExpired, domain.TransferStatusDeleted).Return(nil)
	mockEvents.On("Publish", ctx, mock.MatchedBy(func(e domain.TransferEvent) bool {
		return e.Type == domain.EventTypeTransferDeleted
	})).Return(nil)

	// Act
	report, err := service.PurgeLocalFiles(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.SweepReport{Succeeded: 1}, report)
	mockUow.AssertExpectations(t)
	mockLocal.AssertExpectations(t)
}

func TestLifecycleService_PurgeLocalFiles_DeleteFailureKeepsTransfer(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	mockUow := repository.NewMockUnitOfWork()
	mockLocal := storage.NewMockStore()
	service := lifecycle.NewLifecycleService(mockUow, storage.NewMockStore(), mockLocal, eventbroker.NewMockPublisher(), defaultCfg, testLogger)

	tr := expiredTransfer(domain.StorageTypeLocal)
	tr.Status = domain.TransferStatusExpired

	mockUow.GetTransferRepoMock().On("FindExpiredPastGrace", ctx, mock.Anything).
		Return([]domain.Transfer{tr}, nil)
	mockLocal.On("Delete", mock.Anything, tr.Files[0].StorageKey).
		Return(errors.New("read-only filesystem"))

	// Act
	report, err := service.PurgeLocalFiles(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.SweepReport{Failed: 1}, report)
	mockUow.GetTransferRepoMock().AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
