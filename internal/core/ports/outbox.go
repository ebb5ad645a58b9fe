package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores domain events in the business transaction and hands
// them to the relay later.
type OutboxRepository interface {
	// Add serializes events into pending outbox rows.
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// GetPending returns up to limit unpublished messages, oldest first. Rows
	// are locked with SKIP LOCKED so concurrent relays never share a message.
	GetPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps messages as published at the given time.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the integration feed.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
	Close() error
}
