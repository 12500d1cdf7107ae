package transfer

import (
	"context"
	"io"

	"file-drop/internal/core/domain"

	"github.com/google/uuid"
)

// DownloadFile authorizes access and streams one file of the transfer
// through the application. Local files have no signed URL path, so this
// is how they are served; it works for remote files too when a caller
// prefers proxying. With a nil fileID the transfer must hold exactly
// one file.
func (t *transferService) DownloadFile(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (io.ReadCloser, *domain.File, error) {
	tr, err := t.AuthorizeAccess(ctx, shareLink, accessKey)
	if err != nil {
		return nil, nil, err
	}

	file, err := pickFile(tr, fileID)
	if err != nil {
		return nil, nil, err
	}

	content, err := t.storeFor(file.StorageType).Get(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, err
	}

	if err := t.uow.TransferRepo().IncrementDownloadCount(ctx, tr.ID); err != nil {
		t.logger.Warn("could not increment download count", "transfer_id", tr.ID, "error", err)
	}

	return content, file, nil
}
