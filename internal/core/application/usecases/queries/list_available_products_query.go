package queries

import (
	"errors"

	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListAvailableProductsQueryIsNotConstructed = errors.New(
		"ListAvailableProductsQuery must be created via NewListAvailableProductsQuery constructor",
	)
)

// ListAvailableProductsQuery lists catalog items that are in stock, grouped by
// category and sorted by name.
type ListAvailableProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailableProductsQuery() ListAvailableProductsQuery {
	return ListAvailableProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailableProductsQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableProductsQueryIsNotConstructed)
}

// ProductResponse is the catalog read model with both languages.
type ProductResponse struct {
	ID            int64
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
	CategoryEn    string
	CategoryAr    string
	Price         decimal.Decimal
	Stock         int
	ImageURL      string
}
