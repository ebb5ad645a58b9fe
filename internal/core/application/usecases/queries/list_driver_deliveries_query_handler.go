package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListDriverDeliveriesQueryHandler struct {
	reader orderReader
}

func NewListDriverDeliveriesQueryHandler(db *gorm.DB) ListDriverDeliveriesQueryHandler {
	return ListDriverDeliveriesQueryHandler{reader: orderReader{db: db}}
}

func (h ListDriverDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDriverDeliveriesQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.find(ctx, "WHERE o.driver_id = ?", query.Driver().ID().Bytes())
}
