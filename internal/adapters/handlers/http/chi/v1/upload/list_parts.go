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

// V1ListedPart is one part the store has already received
type V1ListedPart struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
	Size       int64  `json:"size"`
}

// V1ListPartsResponse lists received parts with a pagination marker
type V1ListPartsResponse struct {
	Parts      []V1ListedPart `json:"parts"`
	NextMarker int            `json:"next_marker"`
}

func (h *HandlerV1) ListPartsV1(w http.ResponseWriter, r *http.Request) {
	sessionID, parseErr := uuid.Parse(chi.URLParam(r, "sessionID"))
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	maxParts := 1000
	if v := r.URL.Query().Get("max_parts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid max_parts", http.StatusBadRequest)
			return
		}
		maxParts = n
	}
	marker := 0
	if v := r.URL.Query().Get("marker"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid marker", http.StatusBadRequest)
			return
		}
		marker = n
	}

	parts, nextMarker, err := h.uploadService.ListParts(r.Context(), sessionID, maxParts, marker)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error listing parts", "session_id", sessionID, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		respParts := make([]V1ListedPart, 0, len(parts))
		for _, p := range parts {
			respParts = append(respParts, V1ListedPart{
				PartNumber: p.PartNumber,
				ETag:       p.ETag,
				Size:       p.ContentLength,
			})
		}
		resp := V1ListPartsResponse{Parts: respParts, NextMarker: nextMarker}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
