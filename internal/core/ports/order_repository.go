package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change. The row is written only while its stored
	// status still equals expected; otherwise InvalidTransitionError is returned
	// and nothing changes.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order with its items.
	// Returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	// Concurrent transitions of the same order queue up behind it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
