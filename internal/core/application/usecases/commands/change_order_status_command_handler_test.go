package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChangeStatusHandler(t *testing.T, o *order.Order, updateErr error) (
	commands.ChangeOrderStatusCommandHandler,
	*MockOrderRepository,
	*MockUoW,
) {
	t.Helper()
	ctx := t.Context()

	orders := new(MockOrderRepository)
	orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Maybe()
	orders.On("Update", ctx, o, mock.AnythingOfType("order.Status")).Return(updateErr).Maybe()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Commit", ctx).Return(nil).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	return commands.NewChangeOrderStatusCommandHandler(factory), orders, uow
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, user.Customer)
	store := newActor(t, user.Store)
	o := newPlacedOrder(t, customer)

	h, orders, uow := newChangeStatusHandler(t, o, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(store, o.ID(), "confirmed")
	require.NoError(t, err)

	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	orders.AssertCalled(t, "Update", ctx, o, order.Placed)
	uow.AssertCalled(t, "Commit", ctx)
}

func TestChangeOrderStatusCommandHandler_Handle_DriverPickupRecordsDriver(t *testing.T) {
	ctx := t.Context()
	store := newActor(t, user.Store)
	driver := newActor(t, user.Driver)
	o := newPlacedOrder(t, newActor(t, user.Customer))
	for _, s := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		require.NoError(t, o.ChangeStatus(store, s, o.UpdatedAt()))
	}

	h, orders, _ := newChangeStatusHandler(t, o, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(driver, o.ID(), "out_for_delivery")
	require.NoError(t, err)

	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated.DriverID())
	assert.True(t, updated.DriverID().IsEqual(driver.ID()))
	orders.AssertCalled(t, "Update", ctx, o, order.Ready)
}

func TestChangeOrderStatusCommandHandler_Handle_RejectedTransitions(t *testing.T) {
	customer := newActor(t, user.Customer)

	tests := []struct {
		name   string
		actor  user.Actor
		target string
		want   error
	}{
		{"skipping a step", newActor(t, user.Store), "ready", errs.ErrInvalidTransition},
		{"driver before ready", newActor(t, user.Driver), "out_for_delivery", errs.ErrInvalidTransition},
		{"driver cancelling", newActor(t, user.Driver), "cancelled", errs.ErrInvalidTransition},
		{"customer confirming", customer, "confirmed", errs.ErrAccessDenied},
		{"customer cancelling", customer, "cancelled", errs.ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newPlacedOrder(t, customer)
			h, orders, uow := newChangeStatusHandler(t, o, nil)
			cmd, err := commands.NewChangeOrderStatusCommand(tt.actor, o.ID(), tt.target)
			require.NoError(t, err)

			_, err = h.Handle(t.Context(), cmd)

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, order.Placed, o.Status())
			orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	o := newPlacedOrder(t, newActor(t, user.Customer))

	orders := new(MockOrderRepository)
	orders.On("GetForUpdate", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("order", o.ID())).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, user.Store), o.ID(), "confirmed")
	require.NoError(t, err)

	_, err = commands.NewChangeOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_LostRace(t *testing.T) {
	o := newPlacedOrder(t, newActor(t, user.Customer))
	h, _, uow := newChangeStatusHandler(t, o, errs.NewInvalidTransitionError("confirmed", "confirmed"))
	cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, user.Store), o.ID(), "confirmed")
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := newPlacedOrder(t, newActor(t, user.Customer))

	orders := new(MockOrderRepository)
	orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orders.On("Update", ctx, o, order.Placed).Return(nil).Once()
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, user.Store), o.ID(), "cancelled")
	require.NoError(t, err)

	_, err = commands.NewChangeOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "commit failed")
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
}
