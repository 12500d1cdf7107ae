package transfer

import (
	"errors"
	"file-drop/internal/core/domain"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DownloadFileV1 streams one file of the transfer through the
// application. Files stored on the local tier are only reachable this
// way; remote files can also be fetched here instead of via signed URL.
func (h *HandlerV1) DownloadFileV1(w http.ResponseWriter, r *http.Request) {
	shareLink := chi.URLParam(r, "shareLink")
	accessKey := r.Header.Get(accessKeyHeader)

	var fileID *uuid.UUID
	if raw := chi.URLParam(r, "fileID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid file id", http.StatusBadRequest)
			return
		}
		fileID = &id
	}

	content, file, err := h.transferService.DownloadFile(r.Context(), shareLink, accessKey, fileID)
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, "file id required", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error downloading file", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}
	defer content.Close()

	name := file.DisplayName
	if name == "" {
		name = file.OriginalName
	}
	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if file.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		h.logger.Error("error streaming file", "error", err)
	}
}
