package lifecycle

import (
	"context"
	"file-drop/internal/core/domain"
	"fmt"
	"time"
)

// ExpireTransfers sweeps transfers whose expiry date has passed. Remote
// files are deleted immediately; local files wait for the grace period
// purge. One broken transfer never stops the rest of the batch.
func (l *lifecycleService) ExpireTransfers(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	var report domain.SweepReport

	transfers, err := l.uow.TransferRepo().FindExpiredActive(ctx, now)
	if err != nil {
		return report, fmt.Errorf("could not list expired transfers: %w", err)
	}

	for i := range transfers {
		if err := l.expireOne(ctx, &transfers[i], now); err != nil {
			l.logger.Error("could not expire transfer", "transfer_id", transfers[i].ID, "error", err)
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	if report.Failed > 0 || report.Succeeded > 0 {
		l.logger.Info("expiry sweep finished", "succeeded", report.Succeeded, "failed", report.Failed)
	}
	return report, nil
}

func (l *lifecycleService) expireOne(ctx context.Context, tr *domain.Transfer, now time.Time) error {
	remoteFailures := 0
	for _, f := range tr.Files {
		if f.StorageType != domain.StorageTypeRemote {
			continue
		}
		callCtx, cancel := l.withStorageTimeout(ctx)
		err := l.remote.Delete(callCtx, f.StorageKey)
		cancel()
		if err != nil {
			l.logger.Warn("could not delete remote file", "transfer_id", tr.ID, "key", f.StorageKey, "error", err)
			remoteFailures++
		}
	}
	if remoteFailures > 0 {
		return fmt.Errorf("%d remote files left behind", remoteFailures)
	}

	// With nothing left on disk the transfer skips the expired state.
	target := domain.TransferStatusExpired
	eventType := domain.EventTypeTransferExpired
	if !tr.HasLocalFiles() {
		target = domain.TransferStatusDeleted
		eventType = domain.EventTypeTransferDeleted
	}

	if err := l.uow.TransferRepo().UpdateStatus(ctx, tr.ID, domain.TransferStatusActive, target); err != nil {
		return err
	}

	event := domain.TransferEvent{Type: eventType, TransferID: tr.ID, OccurredAt: now}
	if err := l.events.Publish(ctx, event); err != nil {
		l.logger.Warn("could not publish transfer event", "transfer_id", tr.ID, "type", eventType, "error", err)
	}
	return nil
}
