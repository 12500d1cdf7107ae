package transfer

import (
	"context"
	"crypto/subtle"
	"errors"
	"file-drop/internal/core/domain"
	"time"
)

// AuthorizeAccess resolves a share link and validates its access key.
// Every failure mode collapses into ErrAccessDenied so callers cannot
// probe which part of the pair was wrong, or whether the link exists.
func (t *transferService) AuthorizeAccess(ctx context.Context, shareLink string, accessKey string) (*domain.Transfer, error) {
	if shareLink == "" || accessKey == "" {
		return nil, domain.ErrAccessDenied
	}

	tr, err := t.uow.TransferRepo().FindByShareLink(ctx, shareLink)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(tr.AccessKey), []byte(accessKey)) != 1 {
		return nil, domain.ErrAccessDenied
	}
	if tr.Status != domain.TransferStatusActive || tr.IsExpired(time.Now()) {
		return nil, domain.ErrAccessDenied
	}
	if tr.IsPaymentRequired && !tr.IsPaid {
		return nil, domain.ErrAccessDenied
	}

	return tr, nil
}
