package port

import (
	"context"
	"file-drop/internal/core/domain"
	"io"
	"time"

	"github.com/google/uuid"
)

// TransferService owns the transfer aggregate: creation, the
// authorization gate, and the two download paths. RequestDownload
// issues a signed URL for remote files; DownloadFile streams the
// content through the application, which is the only path for files
// on the local tier.
type TransferService interface {
	CreateTransfer(ctx context.Context, refs []domain.FileRef, retentionDays int, payment *domain.PaymentConfig) (*domain.Transfer, error)
	AuthorizeAccess(ctx context.Context, shareLink string, accessKey string) (*domain.Transfer, error)
	RequestDownload(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (string, *time.Time, error)
	DownloadFile(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (io.ReadCloser, *domain.File, error)
}
