package lifecycle

import (
	"context"
	"encoding/json"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"fmt"
	"log/slog"
)

// EventAuditor consumes transfer lifecycle events and writes them to
// the operational log. It gives the sweeper a durable trace of every
// state change without touching the database.
type EventAuditor struct {
	logger *slog.Logger
}

// NewEventAuditor creates a new EventAuditor
func NewEventAuditor(logger *slog.Logger) port.MessageService {
	return &EventAuditor{logger: logger}
}

func (a *EventAuditor) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.TransferEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not decode transfer event: %w", err)
	}

	a.logger.Info("transfer event",
		"type", event.Type,
		"transfer_id", event.TransferID,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
