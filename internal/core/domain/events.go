package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a transfer lifecycle event
type EventType string

const (
	EventTypeTransferFinalized EventType = "transfer.finalized"
	EventTypeTransferExpired   EventType = "transfer.expired"
	EventTypeTransferDeleted   EventType = "transfer.deleted"
)

// TransferEvent is published when a transfer changes lifecycle state.
type TransferEvent struct {
	Type       EventType `json:"type"`
	TransferID uuid.UUID `json:"transfer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
