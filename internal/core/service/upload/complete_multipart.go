package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompleteMultipartUpload verifies the client-reported parts against the
// store's own listing, then asks the store to assemble the final object.
func (u *uploadService) CompleteMultipartUpload(ctx context.Context, sessionID uuid.UUID, parts []domain.UploadPart) (*domain.FileDescriptor, error) {
	session, err := u.uow.UploadSessionRepo().FindByIDAndOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != domain.UploadKindMultipart {
		return nil, domain.ErrInvalidInput
	}
	if len(parts) != session.ExpectedParts {
		return nil, domain.ErrMismatchNBParts
	}

	err = u.uow.UploadSessionRepo().UpdateExpiresAt(ctx, sessionID, time.Now().Add(u.uploadCfg.SessionTTL))
	if err != nil {
		return nil, err
	}

	exp := make(map[int]string, len(parts))
	for _, p := range parts {
		if p.PartNumber < 1 || p.PartNumber > session.ExpectedParts {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := exp[p.PartNumber]; dup {
			return nil, domain.ErrDuplicatePart
		}
		exp[p.PartNumber] = strings.Trim(p.ETag, "\"")
	}

	marker := 0
	listed := 0
	for {
		storedParts, next, err := u.remote.ListParts(ctx, session.StorageKey, session.ProviderUploadID, 1000, marker)
		if err != nil {
			return nil, err
		}
		for _, part := range storedParts {
			listed++
			got := strings.Trim(part.ETag, "\"")
			want, ok := exp[part.PartNumber]
			if !ok || want != got {
				return nil, domain.ErrMismatchETag
			}
		}
		if next == 0 {
			break
		}
		marker = next
	}
	if listed != len(parts) {
		return nil, domain.ErrMismatchNBParts
	}

	result, err := u.remote.CompleteMultipartUpload(ctx, session.StorageKey, session.ProviderUploadID, parts)
	if err != nil {
		if abortErr := u.remote.AbortMultipartUpload(ctx, session.StorageKey, session.ProviderUploadID); abortErr != nil {
			u.logger.Error("could not abort multipart upload", "key", session.StorageKey, "error", abortErr)
		}
		if statusErr := u.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted); statusErr != nil {
			u.logger.Error("could not mark session aborted", "session_id", session.ID, "error", statusErr)
		}
		return nil, fmt.Errorf("could not complete multipart upload: %w", err)
	}

	if err := u.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusCompleted); err != nil {
		return nil, err
	}

	return &domain.FileDescriptor{
		FileID:       session.FileID,
		TransferID:   session.TransferID,
		OriginalName: session.FileName,
		MimeType:     session.MimeType,
		StorageKey:   session.StorageKey,
		StorageType:  domain.StorageTypeRemote,
		SizeBytes:    result.SizeBytes,
		ETag:         result.ETag,
	}, nil
}
