package lifecycle

import (
	"context"
	"errors"
	"file-drop/internal/core/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const chunkNamespace = "temp/"

// CollectOrphanChunks removes aged temporary chunks whose upload never
// finished. Chunks of an open, unexpired session are left alone.
func (l *lifecycleService) CollectOrphanChunks(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	var report domain.SweepReport

	listCtx, cancel := l.withStorageTimeout(ctx)
	objects, err := l.remote.List(listCtx, chunkNamespace)
	cancel()
	if err != nil {
		return report, fmt.Errorf("could not list chunk namespace: %w", err)
	}

	cutoff := now.Add(-l.lifecycleCfg.OrphanMaxAge)
	// One verdict per owning file so the session lookup runs once
	// regardless of chunk count.
	verdicts := make(map[uuid.UUID]bool)

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}
		fileID, _, ok := domain.ParseChunkKey(obj.Key)
		if !ok {
			l.logger.Warn("foreign object in chunk namespace", "key", obj.Key)
			continue
		}

		orphan, known := verdicts[fileID]
		if !known {
			orphan, err = l.isOrphan(ctx, fileID, now)
			if err != nil {
				l.logger.Error("could not resolve chunk owner", "file_id", fileID, "error", err)
				report.Failed++
				continue
			}
			verdicts[fileID] = orphan
		}
		if !orphan {
			continue
		}

		callCtx, cancel := l.withStorageTimeout(ctx)
		err = l.remote.Delete(callCtx, obj.Key)
		cancel()
		if err != nil {
			l.logger.Warn("could not delete orphan chunk", "key", obj.Key, "error", err)
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	if report.Failed > 0 || report.Succeeded > 0 {
		l.logger.Info("orphan sweep finished", "succeeded", report.Succeeded, "failed", report.Failed)
	}
	return report, nil
}

// isOrphan decides whether chunks owned by fileID may be collected.
// Sessions that expired while still open are closed out here.
func (l *lifecycleService) isOrphan(ctx context.Context, fileID uuid.UUID, now time.Time) (bool, error) {
	session, err := l.uow.UploadSessionRepo().FindByFileID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return true, nil
		}
		return false, err
	}

	switch session.Status {
	case domain.UploadSessionStatusOpen:
		if session.ExpiresAt.After(now) {
			return false, nil
		}
		if err := l.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted); err != nil {
			return false, err
		}
		return true, nil
	case domain.UploadSessionStatusAssembling:
		// Reconstruction in flight, the winner cleans up after itself.
		return false, nil
	default:
		return true, nil
	}
}
