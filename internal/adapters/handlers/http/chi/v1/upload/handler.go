package upload

import (
	"file-drop/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/chunked", h.StartChunkedV1)
	router.Put("/chunked/{sessionID}/chunks/{chunkIndex}", h.SaveChunkV1)
	router.Post("/multipart", h.StartMultipartV1)
	router.Get("/multipart/{sessionID}/parts", h.ListPartsV1)
	router.Post("/multipart/{sessionID}/complete", h.CompleteMultipartV1)

	return router
}
