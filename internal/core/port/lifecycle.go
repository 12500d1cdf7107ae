package port

import (
	"context"
	"file-drop/internal/core/domain"
	"time"
)

// LifecycleService is the recurring sweep over expired transfers and
// abandoned chunks. All operations are idempotent and safe to invoke
// concurrently with themselves.
type LifecycleService interface {
	ExpireTransfers(ctx context.Context, now time.Time) (domain.SweepReport, error)
	PurgeLocalFiles(ctx context.Context, now time.Time) (domain.SweepReport, error)
	CollectOrphanChunks(ctx context.Context, now time.Time) (domain.SweepReport, error)
}
