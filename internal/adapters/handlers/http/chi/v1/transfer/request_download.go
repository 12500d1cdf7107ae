package transfer

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1RequestDownloadRequest selects the file to download. FileID may be
// omitted for single file transfers.
type V1RequestDownloadRequest struct {
	FileID *uuid.UUID `json:"file_id,omitempty"`
}

// V1RequestDownloadResponse carries the short-lived download URL
type V1RequestDownloadResponse struct {
	DownloadURL string     `json:"download_url"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (h *HandlerV1) RequestDownloadV1(w http.ResponseWriter, r *http.Request) {
	shareLink := chi.URLParam(r, "shareLink")
	accessKey := r.Header.Get(accessKeyHeader)

	var req V1RequestDownloadRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	downloadURL, expiresAt, err := h.transferService.RequestDownload(r.Context(), shareLink, accessKey, req.FileID)
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, "file id required", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrSignedURLUnsupported):
		http.Error(w, "no signed url for this file, use the file endpoint", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error requesting download", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1RequestDownloadResponse{
			DownloadURL: downloadURL,
			ExpiresAt:   expiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
