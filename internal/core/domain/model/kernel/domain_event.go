package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a business operation.
// The unit of work stores pending events in the outbox inside the same
// transaction as the aggregate change.
type DomainEvent struct {
	ID          UUID
	Name        string
	AggregateID UUID
	OccurredAt  time.Time
	Payload     any
}

// NewDomainEvent stamps a fresh event id.
func NewDomainEvent(name string, aggregateID UUID, occurredAt time.Time, payload any) DomainEvent {
	return DomainEvent{
		ID:          NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt,
		Payload:     payload,
	}
}
