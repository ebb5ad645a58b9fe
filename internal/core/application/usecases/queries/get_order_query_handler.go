package queries

import (
	"context"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	reader orderReader
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: orderReader{db: db}}
}

// Handle returns ObjectNotFoundError both for unknown orders and for orders
// of other customers, so customers cannot probe for foreign order ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	orders, err := h.reader.find(ctx, "WHERE o.id = ?", query.OrderID().Bytes())
	if err != nil {
		return OrderResponse{}, err
	}

	actor := query.Actor()
	if len(orders) == 0 || (actor.Is(user.Customer) && !orders[0].CustomerID.IsEqual(actor.ID())) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return orders[0], nil
}
