package postgres

import (
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table of the storefront schema in dependency order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema, including the stock CHECK constraint.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
