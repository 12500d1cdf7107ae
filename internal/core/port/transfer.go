package port

import (
	"context"
	"file-drop/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// TransferRepository is an interface to define transfer repository interactions
type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	FindByShareLink(ctx context.Context, shareLink string) (*domain.Transfer, error)
	// UpdateStatus only applies the transition when the current status
	// matches from; 0 rows affected returns ErrTransferNotFound so
	// overlapping sweeps stay idempotent.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.TransferStatus) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
	FindExpiredActive(ctx context.Context, now time.Time) ([]domain.Transfer, error)
	FindExpiredPastGrace(ctx context.Context, cutoff time.Time) ([]domain.Transfer, error)
}
