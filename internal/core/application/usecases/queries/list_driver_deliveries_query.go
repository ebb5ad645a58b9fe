package queries

import (
	"errors"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrListDriverDeliveriesQueryIsNotConstructed = errors.New(
		"ListDriverDeliveriesQuery must be created via NewListDriverDeliveriesQuery constructor",
	)
)

// ListDriverDeliveriesQuery is a driver's delivery history: every order the
// driver took out for delivery, whatever its status now.
type ListDriverDeliveriesQuery struct {
	driver user.Actor

	guard guard.ConstructorGuard
}

// NewListDriverDeliveriesQuery returns AccessDeniedError for non-drivers.
func NewListDriverDeliveriesQuery(actor user.Actor) (ListDriverDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListDriverDeliveriesQuery{}, err
	}
	if !actor.Is(user.Driver) {
		return ListDriverDeliveriesQuery{}, errs.NewAccessDeniedError(actor.Role().String(), "view delivery history")
	}
	return ListDriverDeliveriesQuery{driver: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDriverDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDriverDeliveriesQueryIsNotConstructed)
}

func (q ListDriverDeliveriesQuery) Driver() user.Actor {
	return q.driver
}
