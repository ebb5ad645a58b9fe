package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInFlight is returned by Reserve when another request holds
// the key and has not finished yet.
var ErrIdempotencyKeyInFlight = errors.New("idempotency key is already being processed")

// IdempotencyStore remembers which order an Idempotency-Key produced.
type IdempotencyStore interface {
	// Reserve claims key. It returns ("", nil) when the caller now owns the key,
	// (orderID, nil) when the key already produced an order, and
	// ErrIdempotencyKeyInFlight while another request owns it.
	Reserve(ctx context.Context, key string) (string, error)

	// Complete records the order created under key.
	Complete(ctx context.Context, key, orderID string) error

	// Release drops a reservation whose request failed, so the client may retry.
	Release(ctx context.Context, key string) error
}
