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

// V1TransferFile is one downloadable file of a transfer
type V1TransferFile struct {
	FileID      uuid.UUID `json:"file_id"`
	DisplayName string    `json:"display_name"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
}

// V1GetTransferResponse describes an authorized transfer
type V1GetTransferResponse struct {
	TransferID    uuid.UUID        `json:"transfer_id"`
	Files         []V1TransferFile `json:"files"`
	TotalSize     int64            `json:"total_size_bytes"`
	ExpiryDate    time.Time        `json:"expiry_date"`
	DownloadCount int64            `json:"download_count"`
}

func (h *HandlerV1) GetTransferV1(w http.ResponseWriter, r *http.Request) {
	shareLink := chi.URLParam(r, "shareLink")
	accessKey := r.Header.Get(accessKeyHeader)

	tr, err := h.transferService.AuthorizeAccess(r.Context(), shareLink, accessKey)
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error authorizing transfer access", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		files := make([]V1TransferFile, 0, len(tr.Files))
		for _, f := range tr.Files {
			files = append(files, V1TransferFile{
				FileID:      f.ID,
				DisplayName: f.DisplayName,
				MimeType:    f.MimeType,
				SizeBytes:   f.SizeBytes,
			})
		}
		resp := V1GetTransferResponse{
			TransferID:    tr.ID,
			Files:         files,
			TotalSize:     tr.TotalSizeBytes,
			ExpiryDate:    tr.ExpiryDate,
			DownloadCount: tr.DownloadCount,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
