package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

func (u *uploadService) ListParts(ctx context.Context, sessionID uuid.UUID, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error) {
	session, err := u.uow.UploadSessionRepo().FindByIDAndOpen(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if session.Kind != domain.UploadKindMultipart {
		return nil, 0, domain.ErrInvalidInput
	}

	parts, newMarker, err := u.remote.ListParts(ctx, session.StorageKey, session.ProviderUploadID, maxParts, partNumberMarker)
	if err != nil {
		return nil, 0, err
	}

	err = u.uow.UploadSessionRepo().UpdateExpiresAt(ctx, sessionID, time.Now().Add(u.uploadCfg.SessionTTL))
	if err != nil {
		return nil, 0, err
	}
	return parts, newMarker, nil
}
