// Package redis keeps Idempotency-Key reservations for order creation.
package redis

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "idempotency:order:"

	// pendingMarker is stored while the first request is still running.
	pendingMarker = "pending"

	// DefaultTTL is how long a key is remembered.
	DefaultTTL = 24 * time.Hour
)

// IdempotencyStore implements ports.IdempotencyStore with SETNX.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// NewClient connects to addr and checks the connection with PING.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, error) {
	// A finished key may expire between SETNX and GET; one retry covers it.
	for range 2 {
		reserved, err := s.client.SetNX(ctx, keyPrefix+key, pendingMarker, s.ttl).Result()
		if err != nil {
			return "", err
		}
		if reserved {
			return "", nil
		}

		value, err := s.client.Get(ctx, keyPrefix+key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", err
		}
		if value == pendingMarker {
			return "", ports.ErrIdempotencyKeyInFlight
		}
		return value, nil
	}
	return "", ports.ErrIdempotencyKeyInFlight
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	return s.client.Set(ctx, keyPrefix+key, orderID, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
