package ports

import (
	"context"

	"storefront/internal/core/domain/model/product"
)

// ProductRepository gives the order workflow access to the catalog.
type ProductRepository interface {
	// Add inserts a catalog item. Used by seeding and tests.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get returns one catalog item or ObjectNotFoundError.
	Get(ctx context.Context, id product.ID) (*product.Product, error)

	// GetForUpdate locks the given products in ascending id order and returns
	// them keyed by id. Returns ObjectNotFoundError when any id is unknown.
	GetForUpdate(ctx context.Context, ids []product.ID) (map[product.ID]*product.Product, error)

	// DecrementStock takes quantity units out of stock. The update only applies
	// while stock >= quantity; otherwise InsufficientStockError is returned.
	DecrementStock(ctx context.Context, id product.ID, quantity int) error
}
