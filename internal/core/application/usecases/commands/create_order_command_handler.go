package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// idempotencySettleTimeout bounds Release and Complete once placement is over.
const idempotencySettleTimeout = 5 * time.Second

// CreateOrderCommandHandler places an order and takes its stock in one
// transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, idempotencyStore)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientStock):
//	    // nothing was stored
//	case errors.Is(err, ports.ErrIdempotencyKeyInFlight):
//	    // the same key is still being processed
//	}
type CreateOrderCommandHandler struct {
	uowFactory  PlaceOrderUoWFactory
	idempotency ports.IdempotencyStore
	placer      services.OrderPlacer
}

// NewCreateOrderCommandHandler creates the handler. idempotency may be nil, in
// which case Idempotency-Key headers are ignored.
func NewCreateOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	idempotency ports.IdempotencyStore,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		placer:      services.NewOrderPlacer(),
	}
}

// Handle locks the products in ascending id order, prices and places the
// order, decrements stock with a floor check and inserts the order. Any error
// rolls everything back.
//
// With an idempotency key, a replay returns the order created by the first
// request and a concurrent duplicate fails with ports.ErrIdempotencyKeyInFlight.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	key := cmd.IdempotencyKey()
	if key == "" || h.idempotency == nil {
		return h.place(ctx, cmd)
	}

	existing, err := h.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return h.replay(ctx, existing)
	}

	created, err := h.place(ctx, cmd)

	// The request context may already be cancelled here; the key must still be
	// settled or retries would see it in flight until it expires.
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idempotencySettleTimeout)
	defer cancel()

	if err != nil {
		return nil, errors.Join(err, h.idempotency.Release(settleCtx, key))
	}

	if err := h.idempotency.Complete(settleCtx, key, created.ID().String()); err != nil {
		return nil, err
	}

	return created, nil
}

func (h CreateOrderCommandHandler) place(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := cmd.Lines()
	ids := make([]product.ID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	placed, err := h.placer.Place(
		cmd.OrderID(),
		cmd.Actor(),
		lines,
		products,
		cmd.DeliveryAddress(),
		cmd.PaymentMethod(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err = productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

func (h CreateOrderCommandHandler) replay(ctx context.Context, orderID string) (*order.Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return nil, err
	}
	return h.uowFactory.Create().OrderRepository().Get(ctx, id)
}
