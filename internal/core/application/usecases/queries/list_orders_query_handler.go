package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders straight from the database, newest
// first. Calling it twice without writes in between gives the same result.
type ListOrdersQueryHandler struct {
	reader orderReader
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	switch actor.Role() {
	case user.Customer:
		return h.reader.find(ctx, "WHERE o.customer_id = ?", actor.ID().Bytes())
	case user.Store:
		return h.reader.find(ctx, "")
	case user.Driver:
		return h.reader.find(ctx, "WHERE o.status IN ?",
			[]string{order.Ready.String(), order.OutForDelivery.String()})
	default:
		return nil, errs.NewAccessDeniedError(actor.Role().String(), "list orders")
	}
}
