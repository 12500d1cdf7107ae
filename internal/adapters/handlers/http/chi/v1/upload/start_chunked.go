package upload

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// V1StartChunkedRequest is the request to open a chunked upload session
type V1StartChunkedRequest struct {
	TransferID  uuid.UUID `json:"transfer_id"`
	FileName    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	TotalChunks int       `json:"total_chunks"`
}

// V1StartChunkedResponse is the response to open a chunked upload session
type V1StartChunkedResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	FileID    uuid.UUID `json:"file_id"`
	ChunkSize int64     `json:"chunk_size"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *HandlerV1) StartChunkedV1(w http.ResponseWriter, r *http.Request) {

	var req V1StartChunkedRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding start chunked request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FileName == "" || req.ContentType == "" || req.SizeBytes == 0 || req.TotalChunks == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	session, startErr := h.uploadService.StartChunkedUpload(r.Context(), req.TransferID, req.FileName, req.ContentType, req.SizeBytes, req.TotalChunks)
	switch {
	case errors.Is(startErr, domain.ErrInvalidInput),
		errors.Is(startErr, domain.ErrFileSizeTooBig),
		errors.Is(startErr, domain.ErrFileSizeTooSmall),
		errors.Is(startErr, domain.ErrPartCountOutOfRange):
		http.Error(w, startErr.Error(), http.StatusBadRequest)
		return
	case startErr != nil:
		h.logger.Error("error starting chunked upload", "error", startErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1StartChunkedResponse{
			SessionID: session.ID,
			FileID:    session.FileID,
			ChunkSize: session.PartSize,
			ExpiresAt: session.ExpiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
