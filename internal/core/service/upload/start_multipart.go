package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartMultipartUpload initiates a store-native multipart upload and
// returns presigned targets for every part so clients talk to the
// object store directly.
func (u *uploadService) StartMultipartUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, partCount int) (*domain.UploadSession, []domain.UploadPart, error) {
	if err := u.validateUploadRequest(fileName, sizeBytes, partCount); err != nil {
		return nil, nil, err
	}
	if transferID == uuid.Nil {
		return nil, nil, domain.ErrInvalidInput
	}

	fileID := uuid.New()
	now := time.Now()
	storageKey := domain.FinalObjectKey(now, transferID, fileID, fileName)

	uploadID, err := u.remote.InitMultipartUpload(ctx, storageKey, contentType)
	if err != nil {
		return nil, nil, fmt.Errorf("could not initiate multipart upload: %w", err)
	}

	session := domain.UploadSession{
		ID:               uuid.New(),
		FileID:           fileID,
		TransferID:       transferID,
		Kind:             domain.UploadKindMultipart,
		ProviderUploadID: uploadID,
		FileName:         fileName,
		MimeType:         contentType,
		SizeBytes:        sizeBytes,
		ExpectedParts:    partCount,
		PartSize:         u.uploadCfg.ChunkSize,
		StorageKey:       storageKey,
		ExpiresAt:        now.Add(u.uploadCfg.SessionTTL),
		Status:           domain.UploadSessionStatusOpen,
	}

	err = u.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		return uow.UploadSessionRepo().Create(ctx, session)
	})
	if err != nil {
		if abortErr := u.remote.AbortMultipartUpload(ctx, storageKey, uploadID); abortErr != nil {
			u.logger.Error("could not abort multipart upload", "key", storageKey, "error", abortErr)
		}
		return nil, nil, fmt.Errorf("could not create upload session: %w", err)
	}

	parts := make([]domain.UploadPart, 0, partCount)
	for partNumber := 1; partNumber <= partCount; partNumber++ {
		signedURL, headers, expiresAt, err := u.remote.PresignedPartURL(ctx, storageKey, partNumber, uploadID)
		if err != nil {
			return nil, nil, fmt.Errorf("could not presign part %d: %w", partNumber, err)
		}
		parts = append(parts, domain.UploadPart{
			PartNumber:   partNumber,
			PresignedURL: signedURL,
			Headers:      headers,
			ExpiresAt:    expiresAt,
		})
	}

	return &session, parts, nil
}
