package lifecycle

import (
	"context"
	"file-drop/internal/config"
	"file-drop/internal/core/port"
	"log/slog"
)

type lifecycleService struct {
	uow          port.UnitOfWork
	remote       port.ObjectStore
	local        port.ObjectStore
	events       port.EventPublisher
	lifecycleCfg config.LifecycleConfig
	logger       *slog.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(uow port.UnitOfWork, remote, local port.ObjectStore, events port.EventPublisher, cfg config.LifecycleConfig, logger *slog.Logger) port.LifecycleService {
	return &lifecycleService{
		uow:          uow,
		remote:       remote,
		local:        local,
		events:       events,
		lifecycleCfg: cfg,
		logger:       logger,
	}
}

// withStorageTimeout bounds a single storage call so one hung request
// cannot stall a whole sweep.
func (l *lifecycleService) withStorageTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, l.lifecycleCfg.StorageCallTO)
}
