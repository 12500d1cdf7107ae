package transfer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	shareLinkBytes = 16
	accessKeyBytes = 8
)

func newToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreateTransfer groups finalized files behind a fresh share link and
// access key. The file list is fixed at creation.
func (t *transferService) CreateTransfer(ctx context.Context, refs []domain.FileRef, retentionDays int, payment *domain.PaymentConfig) (*domain.Transfer, error) {
	if len(refs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if retentionDays == 0 {
		retentionDays = t.transferCfg.DefaultRetentionDays
	}
	if retentionDays < 0 || retentionDays > t.transferCfg.MaxRetentionDays {
		return nil, domain.ErrInvalidInput
	}

	transferID := uuid.New()
	now := time.Now()

	files := make([]domain.File, 0, len(refs))
	var totalSize int64
	for _, ref := range refs {
		file, err := t.resolveRef(ctx, transferID, ref)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
		totalSize += file.SizeBytes
	}

	shareLink, err := newToken(shareLinkBytes)
	if err != nil {
		return nil, err
	}
	accessKey, err := newToken(accessKeyBytes)
	if err != nil {
		return nil, err
	}

	tr := domain.Transfer{
		ID:             transferID,
		Files:          files,
		TotalSizeBytes: totalSize,
		ShareLink:      shareLink,
		AccessKey:      accessKey,
		Status:         domain.TransferStatusActive,
		ExpiryDate:     now.Add(time.Duration(retentionDays) * 24 * time.Hour),
	}
	if payment != nil {
		tr.IsPaymentRequired = true
		tr.PaymentAmount = payment.Amount
		tr.PaymentCurrency = payment.Currency
	}

	err = t.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		return uow.TransferRepo().Create(ctx, tr)
	})
	if err != nil {
		return nil, fmt.Errorf("could not create transfer: %w", err)
	}

	event := domain.TransferEvent{
		Type:       domain.EventTypeTransferFinalized,
		TransferID: tr.ID,
		OccurredAt: now,
	}
	if err := t.events.Publish(ctx, event); err != nil {
		t.logger.Warn("could not publish transfer event", "transfer_id", tr.ID, "type", event.Type, "error", err)
	}

	t.logger.Info("transfer created", "transfer_id", tr.ID, "files", len(files), "total_size", totalSize)
	return &tr, nil
}

// resolveRef turns a file reference into a finalized file. References
// by file ID must point at a completed upload session.
func (t *transferService) resolveRef(ctx context.Context, transferID uuid.UUID, ref domain.FileRef) (*domain.File, error) {
	if ref.FileID != nil {
		session, err := t.uow.UploadSessionRepo().FindByFileID(ctx, *ref.FileID)
		if err != nil {
			return nil, err
		}
		if session.Status != domain.UploadSessionStatusCompleted {
			return nil, domain.ErrIncompleteUpload
		}
		return &domain.File{
			ID:           session.FileID,
			TransferID:   transferID,
			OriginalName: session.FileName,
			DisplayName:  domain.SanitizeFilename(session.FileName),
			StorageKey:   session.StorageKey,
			StorageType:  domain.StorageTypeRemote,
			MimeType:     session.MimeType,
			SizeBytes:    session.SizeBytes,
		}, nil
	}

	if ref.StorageKey == "" || ref.OriginalName == "" || ref.SizeBytes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	storageType := ref.StorageType
	if storageType == "" {
		storageType = domain.StorageTypeLocal
	}
	return &domain.File{
		ID:           uuid.New(),
		TransferID:   transferID,
		OriginalName: ref.OriginalName,
		DisplayName:  domain.SanitizeFilename(ref.OriginalName),
		StorageKey:   ref.StorageKey,
		StorageType:  storageType,
		MimeType:     ref.MimeType,
		SizeBytes:    ref.SizeBytes,
	}, nil
}
