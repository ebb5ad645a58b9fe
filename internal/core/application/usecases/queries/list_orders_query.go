package queries

import (
	"errors"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists the orders an actor is allowed to see:
// customers their own, the store all of them and drivers the ones waiting for
// or on their way to delivery.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor user.Actor) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() user.Actor {
	return q.actor
}
