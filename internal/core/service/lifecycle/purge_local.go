package lifecycle

import (
	"context"
	"file-drop/internal/core/domain"
	"fmt"
	"time"
)

// PurgeLocalFiles removes local files of transfers that have been
// expired for longer than the grace period, then retires the transfer.
func (l *lifecycleService) PurgeLocalFiles(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	var report domain.SweepReport

	cutoff := now.Add(-l.lifecycleCfg.GracePeriod)
	transfers, err := l.uow.TransferRepo().FindExpiredPastGrace(ctx, cutoff)
	if err != nil {
		return report, fmt.Errorf("could not list transfers past grace: %w", err)
	}

	for i := range transfers {
		if err := l.purgeOne(ctx, &transfers[i], now); err != nil {
			l.logger.Error("could not purge transfer", "transfer_id", transfers[i].ID, "error", err)
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	if report.Failed > 0 || report.Succeeded > 0 {
		l.logger.Info("purge sweep finished", "succeeded", report.Succeeded, "failed", report.Failed)
	}
	return report, nil
}

func (l *lifecycleService) purgeOne(ctx context.Context, tr *domain.Transfer, now time.Time) error {
	localFailures := 0
	for _, f := range tr.Files {
		if f.StorageType != domain.StorageTypeLocal {
			continue
		}
		callCtx, cancel := l.withStorageTimeout(ctx)
		err := l.local.Delete(callCtx, f.StorageKey)
		cancel()
		if err != nil {
			l.logger.Warn("could not delete local file", "transfer_id", tr.ID, "key", f.StorageKey, "error", err)
			localFailures++
		}
	}
	if localFailures > 0 {
		return fmt.Errorf("%d local files left behind", localFailures)
	}

	if err := l.uow.TransferRepo().UpdateStatus(ctx, tr.ID, domain.TransferStatusExpired, domain.TransferStatusDeleted); err != nil {
		return err
	}

	event := domain.TransferEvent{Type: domain.EventTypeTransferDeleted, TransferID: tr.ID, OccurredAt: now}
	if err := l.events.Publish(ctx, event); err != nil {
		l.logger.Warn("could not publish transfer event", "transfer_id", tr.ID, "type", event.Type, "error", err)
	}
	return nil
}
