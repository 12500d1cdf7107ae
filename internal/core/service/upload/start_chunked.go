package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartChunkedUpload declares upload intent for one logical file that
// will arrive as totalChunks individually-addressed chunks.
func (u *uploadService) StartChunkedUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, totalChunks int) (*domain.UploadSession, error) {
	if err := u.validateUploadRequest(fileName, sizeBytes, totalChunks); err != nil {
		return nil, err
	}
	if transferID == uuid.Nil {
		return nil, domain.ErrInvalidInput
	}

	fileID := uuid.New()
	now := time.Now()

	session := domain.UploadSession{
		ID:            uuid.New(),
		FileID:        fileID,
		TransferID:    transferID,
		Kind:          domain.UploadKindChunked,
		FileName:      fileName,
		MimeType:      contentType,
		SizeBytes:     sizeBytes,
		ExpectedParts: totalChunks,
		PartSize:      u.uploadCfg.ChunkSize,
		StorageKey:    domain.FinalObjectKey(now, transferID, fileID, fileName),
		ChunkPrefix:   domain.ChunkKeyPrefix(now, transferID, fileID),
		ExpiresAt:     now.Add(u.uploadCfg.SessionTTL),
		Status:        domain.UploadSessionStatusOpen,
	}

	if err := u.uow.UploadSessionRepo().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("could not start chunked upload: %w", err)
	}

	return &session, nil
}
