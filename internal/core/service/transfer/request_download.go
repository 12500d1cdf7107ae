package transfer

import (
	"context"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// RequestDownload authorizes access and issues a short-lived signed URL
// for one file of the transfer. With a nil fileID the transfer must
// hold exactly one file.
func (t *transferService) RequestDownload(ctx context.Context, shareLink string, accessKey string, fileID *uuid.UUID) (string, *time.Time, error) {
	tr, err := t.AuthorizeAccess(ctx, shareLink, accessKey)
	if err != nil {
		return "", nil, err
	}

	file, err := pickFile(tr, fileID)
	if err != nil {
		return "", nil, err
	}

	signedURL, expiresAt, err := t.storeFor(file.StorageType).SignedURL(ctx, file.StorageKey, t.transferCfg.DownloadURLTTL)
	if err != nil {
		return "", nil, err
	}

	if err := t.uow.TransferRepo().IncrementDownloadCount(ctx, tr.ID); err != nil {
		t.logger.Warn("could not increment download count", "transfer_id", tr.ID, "error", err)
	}

	return signedURL, expiresAt, nil
}

func (t *transferService) storeFor(storageType domain.StorageType) port.ObjectStore {
	if storageType == domain.StorageTypeLocal {
		return t.local
	}
	return t.remote
}

func pickFile(tr *domain.Transfer, fileID *uuid.UUID) (*domain.File, error) {
	if fileID == nil {
		if len(tr.Files) != 1 {
			return nil, domain.ErrInvalidInput
		}
		return &tr.Files[0], nil
	}
	for i := range tr.Files {
		if tr.Files[i].ID == *fileID {
			return &tr.Files[i], nil
		}
	}
	return nil, domain.ErrAccessDenied
}
