package upload

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CompletedPart is one client-reported uploaded part
type CompletedPart struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
	Checksum   string `json:"checksum"`
}

// V1CompleteMultipartRequest is the request to finalize a multipart upload
type V1CompleteMultipartRequest struct {
	Parts []CompletedPart `json:"parts"`
}

// V1CompleteMultipartResponse is the finalized file
type V1CompleteMultipartResponse struct {
	File V1FileDescriptor `json:"file"`
}

func (h *HandlerV1) CompleteMultipartV1(w http.ResponseWriter, r *http.Request) {
	sessionID, parseErr := uuid.Parse(chi.URLParam(r, "sessionID"))
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	var req V1CompleteMultipartRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding complete multipart request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Parts) == 0 {
		http.Error(w, "request contains no parts", http.StatusBadRequest)
		return
	}

	var domainParts []domain.UploadPart
	for _, part := range req.Parts {
		domainParts = append(domainParts, domain.UploadPart{
			PartNumber:     part.PartNumber,
			ETag:           part.ETag,
			ChecksumSHA256: part.Checksum,
		})
	}

	descriptor, err := h.uploadService.CompleteMultipartUpload(r.Context(), sessionID, domainParts)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrMismatchETag),
		errors.Is(err, domain.ErrMismatchNBParts),
		errors.Is(err, domain.ErrDuplicatePart),
		errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, "invalid part", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error completing multipart upload", "session_id", sessionID, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CompleteMultipartResponse{
			File: V1FileDescriptor{
				FileID:     descriptor.FileID,
				TransferID: descriptor.TransferID,
				StorageKey: descriptor.StorageKey,
				SizeBytes:  descriptor.SizeBytes,
				ETag:       descriptor.ETag,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
