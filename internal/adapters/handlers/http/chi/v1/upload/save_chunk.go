package upload

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1SaveChunkResponse acknowledges a stored chunk. The descriptor is
// only present on the request that completed the file.
type V1SaveChunkResponse struct {
	ChunkReceived bool              `json:"chunk_received"`
	FileCompleted bool              `json:"file_completed"`
	File          *V1FileDescriptor `json:"file,omitempty"`
}

// V1FileDescriptor describes the finalized object
type V1FileDescriptor struct {
	FileID     uuid.UUID `json:"file_id"`
	TransferID uuid.UUID `json:"transfer_id"`
	StorageKey string    `json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	ETag       string    `json:"etag"`
}

func (h *HandlerV1) SaveChunkV1(w http.ResponseWriter, r *http.Request) {
	sessionID, parseErr := uuid.Parse(chi.URLParam(r, "sessionID"))
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}
	chunkIndex, parseErr := strconv.Atoi(chi.URLParam(r, "chunkIndex"))
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}
	if r.ContentLength <= 0 {
		http.Error(w, "missing chunk body", http.StatusBadRequest)
		return
	}

	ack, err := h.uploadService.SaveChunk(r.Context(), sessionID, chunkIndex, r.Body, r.ContentLength)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrInvalidChunkIndex), errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error saving chunk", "session_id", sessionID, "chunk_index", chunkIndex, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1SaveChunkResponse{
			ChunkReceived: ack.ChunkReceived,
			FileCompleted: ack.FileCompleted,
		}
		if ack.Descriptor != nil {
			resp.File = &V1FileDescriptor{
				FileID:     ack.Descriptor.FileID,
				TransferID: ack.Descriptor.TransferID,
				StorageKey: ack.Descriptor.StorageKey,
				SizeBytes:  ack.Descriptor.SizeBytes,
				ETag:       ack.Descriptor.ETag,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
