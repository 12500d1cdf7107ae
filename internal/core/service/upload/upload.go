package upload

import (
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"log/slog"
)

type uploadService struct {
	uow       port.UnitOfWork
	remote    port.RemoteStore
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(uow port.UnitOfWork, remote port.RemoteStore, cfg config.UploadConfig, logger *slog.Logger) port.UploadService {
	return &uploadService{uow: uow, remote: remote, uploadCfg: cfg, logger: logger}
}

func (u *uploadService) validateUploadRequest(fileName string, sizeBytes int64, partCount int) error {
	if fileName == "" {
		return domain.ErrInvalidInput
	}
	if sizeBytes <= 0 {
		return domain.ErrFileSizeTooSmall
	}
	if sizeBytes > u.uploadCfg.MaxFileSize {
		return domain.ErrFileSizeTooBig
	}
	if partCount < u.uploadCfg.MinPartCount || partCount > u.uploadCfg.MaxPartCount {
		return domain.ErrPartCountOutOfRange
	}
	return nil
}
