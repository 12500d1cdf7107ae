package postgres_test

import (
	"context"
	"file-drop/internal/adapters/repository/postgres"
	"file-drop/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSqlTransferRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	transferRepo := postgres.NewSQLTransferRepository(dbConnection)

	newTransfer := func(status domain.TransferStatus, expiry time.Time) domain.Transfer {
		id := uuid.New()
		return domain.Transfer{
			ID:             id,
			ShareLink:      "link-" + id.String(),
			AccessKey:      "key-" + id.String(),
			Status:         status,
			TotalSizeBytes: 2048,
			ExpiryDate:     expiry.Round(time.Microsecond),
			Files: []domain.File{
				{
					ID:           uuid.New(),
					TransferID:   id,
					OriginalName: "report.pdf",
					DisplayName:  "report.pdf",
					StorageKey:   "prod/2026/08/28/t_" + id.String() + "/f_report.pdf",
					StorageType:  domain.StorageTypeRemote,
					MimeType:     "application/pdf",
					SizeBytes:    2048,
				},
			},
		}
	}

	t.Run("Create - Nominal case with files", func(t *testing.T) {
		// Arrange
		truncate()
		transfer := newTransfer(domain.TransferStatusActive, time.Now().Add(24*time.Hour))

		// Act
		err := transferRepo.Create(ctx, transfer)

		// Assert
		require.NoError(t, err)
		saved, err := transferRepo.FindByID(ctx, transfer.ID)
		require.NoError(t, err)
		require.Equal(t, transfer.ShareLink, saved.ShareLink)
		require.Equal(t, transfer.AccessKey, saved.AccessKey)
		require.Equal(t, domain.TransferStatusActive, saved.Status)
		require.WithinDuration(t, transfer.ExpiryDate, saved.ExpiryDate, time.Second)
		require.Len(t, saved.Files, 1)
		require.Equal(t, transfer.Files[0].StorageKey, saved.Files[0].StorageKey)
		require.Equal(t, domain.StorageTypeRemote, saved.Files[0].StorageType)
	})

	t.Run("Create - Error on duplicate share link", func(t *testing.T) {
		// Arrange
		truncate()
		first := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		require.NoError(t, transferRepo.Create(ctx, first))

		second := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		second.ShareLink = first.ShareLink

		// Act
		err := transferRepo.Create(ctx, second)

		// Assert
		require.Error(t, err)
	})

	t.Run("FindByShareLink - Nominal case", func(t *testing.T) {
		// Arrange
		truncate()
		transfer := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		require.NoError(t, transferRepo.Create(ctx, transfer))

		// Act
		found, err := transferRepo.FindByShareLink(ctx, transfer.ShareLink)

		// Assert
		require.NoError(t, err)
		require.Equal(t, transfer.ID, found.ID)
		require.Len(t, found.Files, 1)
	})

	t.Run("FindByShareLink - Not found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		_, err := transferRepo.FindByShareLink(ctx, "nope")

		// Assert
		require.ErrorIs(t, err, domain.ErrTransferNotFound)
	})

	t.Run("UpdateStatus - Applies conditional transition", func(t *testing.T) {
		// Arrange
		truncate()
		transfer := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		require.NoError(t, transferRepo.Create(ctx, transfer))

		// Act
		err := transferRepo.UpdateStatus(ctx, transfer.ID, domain.TransferStatusActive, domain.TransferStatusExpired)

		// Assert
		require.NoError(t, err)
		updated, err := transferRepo.FindByID(ctx, transfer.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TransferStatusExpired, updated.Status)
	})

	t.Run("UpdateStatus - Error when not in expected state", func(t *testing.T) {
		// Arrange
		truncate()
		transfer := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		require.NoError(t, transferRepo.Create(ctx, transfer))

		// Act
		err := transferRepo.UpdateStatus(ctx, transfer.ID, domain.TransferStatusExpired, domain.TransferStatusDeleted)

		// Assert
		require.ErrorIs(t, err, domain.ErrTransferNotFound)
		unchanged, _ := transferRepo.FindByID(ctx, transfer.ID)
		require.Equal(t, domain.TransferStatusActive, unchanged.Status)
	})

	t.Run("IncrementDownloadCount - Nominal case", func(t *testing.T) {
		// Arrange
		truncate()
		transfer := newTransfer(domain.TransferStatusActive, time.Now().Add(time.Hour))
		require.NoError(t, transferRepo.Create(ctx, transfer))

		// Act
		require.NoError(t, transferRepo.IncrementDownloadCount(ctx, transfer.ID))
		require.NoError(t, transferRepo.IncrementDownloadCount(ctx, transfer.ID))

		// Assert
		found, err := transferRepo.FindByID(ctx, transfer.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), found.DownloadCount)
	})

	t.Run("IncrementDownloadCount - Error when transfer missing", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := transferRepo.IncrementDownloadCount(ctx, uuid.New())

		// Assert
		require.ErrorIs(t, err, domain.ErrTransferNotFound)
	})

	t.Run("FindExpiredActive - Returns only active past expiry", func(t *testing.T) {
		// Arrange
		truncate()
		now := time.Now()
		expired := newTransfer(domain.TransferStatusActive, now.Add(-time.Hour))
		live := newTransfer(domain.TransferStatusActive, now.Add(time.Hour))
		alreadyExpired := newTransfer(domain.TransferStatusExpired, now.Add(-time.Hour))
		require.NoError(t, transferRepo.Create(ctx, expired))
		require.NoError(t, transferRepo.Create(ctx, live))
		require.NoError(t, transferRepo.Create(ctx, alreadyExpired))

		// Act
		found, err := transferRepo.FindExpiredActive(ctx, now)

		// Assert
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, expired.ID, found[0].ID)
		require.Len(t, found[0].Files, 1)
	})

	t.Run("FindExpiredPastGrace - Returns expired older than cutoff", func(t *testing.T) {
		// Arrange
		truncate()
		now := time.Now()
		stale := newTransfer(domain.TransferStatusExpired, now.Add(-48*time.Hour))
		recent := newTransfer(domain.TransferStatusExpired, now.Add(-time.Hour))
		require.NoError(t, transferRepo.Create(ctx, stale))
		require.NoError(t, transferRepo.Create(ctx, recent))

		// Act
		found, err := transferRepo.FindExpiredPastGrace(ctx, now.Add(-24*time.Hour))

		// Assert
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, stale.ID, found[0].ID)
	})
}
