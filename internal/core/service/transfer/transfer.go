package transfer

import (
	"file-drop/internal/config"
	"file-drop/internal/core/port"
	"log/slog"
)

type transferService struct {
	uow         port.UnitOfWork
	remote      port.ObjectStore
	local       port.ObjectStore
	events      port.EventPublisher
	transferCfg config.TransferConfig
	logger      *slog.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(uow port.UnitOfWork, remote, local port.ObjectStore, events port.EventPublisher, cfg config.TransferConfig, logger *slog.Logger) port.TransferService {
	return &transferService{
		uow:         uow,
		remote:      remote,
		local:       local,
		events:      events,
		transferCfg: cfg,
		logger:      logger,
	}
}
