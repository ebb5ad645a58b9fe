package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
)

// UserRepository stores login credentials.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	// Get returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByUsername returns ObjectNotFoundError for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}
