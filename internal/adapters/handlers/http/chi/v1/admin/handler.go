package admin

import (
	"file-drop/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 exposes the lifecycle sweeps for manual operation. The
// same sweeps run on timers; these endpoints exist for runbooks.
type HandlerV1 struct {
	lifecycleService port.LifecycleService
	logger           *slog.Logger
}

// NewAdminHandlerV1 creates HandlerV1
func NewAdminHandlerV1(service port.LifecycleService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		lifecycleService: service,
		logger:           logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sweep/expire", h.SweepExpireV1)
	router.Post("/sweep/purge-local", h.SweepPurgeLocalV1)
	router.Post("/sweep/orphans", h.SweepOrphansV1)

	return router
}
