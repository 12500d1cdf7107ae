package upload

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// V1StartMultipartRequest is the request to initiate a multipart upload
type V1StartMultipartRequest struct {
	TransferID  uuid.UUID `json:"transfer_id"`
	FileName    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PartCount   int       `json:"part_count"`
}

// V1PresignedPart is one presigned upload target
type V1PresignedPart struct {
	PartNumber   int               `json:"part_number"`
	PresignedURL string            `json:"presigned_url"`
	Headers      map[string]string `json:"headers"`
	ExpiresAt    *time.Time        `json:"expires_at"`
}

// V1StartMultipartResponse is the response to initiate a multipart upload
type V1StartMultipartResponse struct {
	SessionID uuid.UUID         `json:"session_id"`
	FileID    uuid.UUID         `json:"file_id"`
	Parts     []V1PresignedPart `json:"parts"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func (h *HandlerV1) StartMultipartV1(w http.ResponseWriter, r *http.Request) {

	var req V1StartMultipartRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding start multipart request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FileName == "" || req.ContentType == "" || req.SizeBytes == 0 || req.PartCount == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	session, parts, startErr := h.uploadService.StartMultipartUpload(r.Context(), req.TransferID, req.FileName, req.ContentType, req.SizeBytes, req.PartCount)
	switch {
	case errors.Is(startErr, domain.ErrInvalidInput),
		errors.Is(startErr, domain.ErrFileSizeTooBig),
		errors.Is(startErr, domain.ErrFileSizeTooSmall),
		errors.Is(startErr, domain.ErrPartCountOutOfRange):
		http.Error(w, startErr.Error(), http.StatusBadRequest)
		return
	case startErr != nil:
		h.logger.Error("error starting multipart upload", "error", startErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		respParts := make([]V1PresignedPart, 0, len(parts))
		for _, p := range parts {
			respParts = append(respParts, V1PresignedPart{
				PartNumber:   p.PartNumber,
				PresignedURL: p.PresignedURL,
				Headers:      p.Headers,
				ExpiresAt:    p.ExpiresAt,
			})
		}
		resp := V1StartMultipartResponse{
			SessionID: session.ID,
			FileID:    session.FileID,
			Parts:     respParts,
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
