package transfer

import (
	"encoding/json"
	"errors"
	"file-drop/internal/core/domain"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// V1FileRef references one finalized upload by file id
type V1FileRef struct {
	FileID *uuid.UUID `json:"file_id,omitempty"`

	// Direct storage fields for files placed outside the upload flow.
	StorageKey   string `json:"storage_key,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"`
	StorageType  string `json:"storage_type,omitempty"`
}

// V1Payment is the optional payment gate
type V1Payment struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// V1CreateTransferRequest is the request to create a transfer
type V1CreateTransferRequest struct {
	Files         []V1FileRef `json:"files"`
	RetentionDays int         `json:"retention_days"`
	Payment       *V1Payment  `json:"payment,omitempty"`
}

// V1CreateTransferResponse is the created transfer
type V1CreateTransferResponse struct {
	TransferID uuid.UUID `json:"transfer_id"`
	ShareLink  string    `json:"share_link"`
	AccessKey  string    `json:"access_key"`
	ExpiryDate time.Time `json:"expiry_date"`
	TotalSize  int64     `json:"total_size_bytes"`
	FileCount  int       `json:"file_count"`
}

func (h *HandlerV1) CreateTransferV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateTransferRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create transfer request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Files) == 0 {
		http.Error(w, "provide at least one file", http.StatusBadRequest)
		return
	}

	refs := make([]domain.FileRef, 0, len(req.Files))
	for _, f := range req.Files {
		refs = append(refs, domain.FileRef{
			FileID:       f.FileID,
			StorageKey:   f.StorageKey,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			SizeBytes:    f.SizeBytes,
			StorageType:  domain.StorageType(f.StorageType),
		})
	}

	var payment *domain.PaymentConfig
	if req.Payment != nil {
		payment = &domain.PaymentConfig{Amount: req.Payment.Amount, Currency: req.Payment.Currency}
	}

	tr, createErr := h.transferService.CreateTransfer(r.Context(), refs, req.RetentionDays, payment)
	switch {
	case errors.Is(createErr, domain.ErrInvalidInput), errors.Is(createErr, domain.ErrIncompleteUpload):
		http.Error(w, createErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(createErr, domain.ErrSessionNotFound):
		http.Error(w, "unknown file reference", http.StatusBadRequest)
		return
	case createErr != nil:
		h.logger.Error("error creating transfer", "error", createErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CreateTransferResponse{
			TransferID: tr.ID,
			ShareLink:  tr.ShareLink,
			AccessKey:  tr.AccessKey,
			ExpiryDate: tr.ExpiryDate,
			TotalSize:  tr.TotalSizeBytes,
			FileCount:  len(tr.Files),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
