package admin

import (
	"context"
	"encoding/json"
	"file-drop/internal/core/domain"
	"net/http"
	"time"
)

type sweepFunc func(ctx context.Context, now time.Time) (domain.SweepReport, error)

func (h *HandlerV1) runSweep(w http.ResponseWriter, r *http.Request, name string, sweep sweepFunc) {
	report, err := sweep(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("sweep failed", "sweep", name, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func (h *HandlerV1) SweepExpireV1(w http.ResponseWriter, r *http.Request) {
	h.runSweep(w, r, "expire", h.lifecycleService.ExpireTransfers)
}

func (h *HandlerV1) SweepPurgeLocalV1(w http.ResponseWriter, r *http.Request) {
	h.runSweep(w, r, "purge-local", h.lifecycleService.PurgeLocalFiles)
}

func (h *HandlerV1) SweepOrphansV1(w http.ResponseWriter, r *http.Request) {
	h.runSweep(w, r, "orphans", h.lifecycleService.CollectOrphanChunks)
}
