package postgres_test

import (
	"context"
	"file-drop/internal/adapters/repository/postgres"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlUnitOfWork_Execute(t *testing.T) {

	//Arrange
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	uow := postgres.NewUnitOfWork(dbConnection)
	transferRepo := postgres.NewSQLTransferRepository(dbConnection)

	newTransfer := func() domain.Transfer {
		id := uuid.New()
		return domain.Transfer{
			ID:             id,
			ShareLink:      "link-" + id.String(),
			AccessKey:      "key-" + id.String(),
			Status:         domain.TransferStatusActive,
			TotalSizeBytes: 1024,
			ExpiryDate:     time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("Should commit when no error", func(t *testing.T) {
		defer truncate()
		transfer := newTransfer()

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			return u.TransferRepo().Create(ctx, transfer)
		})

		//assert
		require.NoError(t, err)
		saved, err := transferRepo.FindByID(ctx, transfer.ID)
		require.NoError(t, err)
		require.Equal(t, transfer.ShareLink, saved.ShareLink)
	})

	t.Run("Should rollback when error occurs", func(t *testing.T) {
		defer truncate()
		transfer := newTransfer()

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			_ = u.TransferRepo().Create(ctx, transfer)
			return assert.AnError
		})

		//assert
		require.ErrorIs(t, err, assert.AnError)
		_, err = transferRepo.FindByID(ctx, transfer.ID)
		require.ErrorIs(t, err, domain.ErrTransferNotFound)
	})

	t.Run("Should rollback both repos together", func(t *testing.T) {
		defer truncate()
		transfer := newTransfer()
		sessionRepo := postgres.NewSQLUploadSessionRepository(dbConnection)
		sessionID := uuid.New()

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			if err := u.TransferRepo().Create(ctx, transfer); err != nil {
				return err
			}
			if err := u.UploadSessionRepo().Create(ctx, domain.UploadSession{
				ID:         sessionID,
				FileID:     uuid.New(),
				TransferID: transfer.ID,
				Kind:       domain.UploadKindChunked,
				FileName:   "a.bin",
				MimeType:   "application/octet-stream",
				SizeBytes:  1024,
				ExpiresAt:  time.Now().Add(time.Hour),
				Status:     domain.UploadSessionStatusOpen,
			}); err != nil {
				return err
			}
			return assert.AnError
		})

		//assert
		require.ErrorIs(t, err, assert.AnError)
		_, err = transferRepo.FindByID(ctx, transfer.ID)
		require.ErrorIs(t, err, domain.ErrTransferNotFound)
		_, err = sessionRepo.FindByID(ctx, sessionID)
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
