package port

import (
	"context"
	"file-drop/internal/core/domain"
)

// EventPublisher publishes transfer lifecycle events (nats, kafka, ...)
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TransferEvent) error
	Close() error
}

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
