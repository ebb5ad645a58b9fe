package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies one lifecycle transition.
//
// The order row is locked with SELECT ... FOR UPDATE and written back with
// WHERE status = <status read>, so of two concurrent identical transitions
// exactly one succeeds and the other gets InvalidTransitionError.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated order.
//
// Errors: ObjectNotFoundError for unknown orders, AccessDeniedError for roles
// without write transitions, InvalidTransitionError for pairs the table does
// not allow.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.ChangeStatus(cmd.Actor(), cmd.Target(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, from); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
