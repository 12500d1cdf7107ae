package transfer

import (
	"file-drop/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// accessKeyHeader carries the access key paired with the share link.
const accessKeyHeader = "X-Access-Key"

// HandlerV1 is the handler for v1 transfer routes
type HandlerV1 struct {
	transferService port.TransferService
	logger          *slog.Logger
}

// NewTransferHandlerV1 creates HandlerV1
func NewTransferHandlerV1(service port.TransferService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		transferService: service,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateTransferV1)
	router.Get("/{shareLink}", h.GetTransferV1)
	router.Post("/{shareLink}/download", h.RequestDownloadV1)
	router.Get("/{shareLink}/file", h.DownloadFileV1)
	router.Get("/{shareLink}/file/{fileID}", h.DownloadFileV1)

	return router
}
