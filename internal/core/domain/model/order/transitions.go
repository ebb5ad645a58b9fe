package order

import (
	"errors"
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

// TransitionTable lists, for every status and role, the statuses that role may
// move an order to. A role missing from every row has no write access at all.
type TransitionTable map[Status]map[user.Role][]Status

var defaultTransitions = TransitionTable{
	Placed: {
		user.Store: {Confirmed, Cancelled},
	},
	Confirmed: {
		user.Store: {Preparing},
	},
	Preparing: {
		user.Store: {Ready},
	},
	Ready: {
		user.Driver: {OutForDelivery},
	},
	OutForDelivery: {
		user.Driver: {Delivered},
	},
	Delivered: {},
	Cancelled: {},
}

// DefaultTransitions returns the lifecycle used by Order.ChangeStatus.
func DefaultTransitions() TransitionTable {
	return defaultTransitions
}

// Validate checks that the table covers every status exactly, that terminal
// statuses have no outgoing edges and that every target is a known status.
// It is run once at startup.
func (t TransitionTable) Validate() error {
	var errList []error

	for _, from := range Statuses() {
		row, ok := t[from]
		if !ok {
			errList = append(errList, fmt.Errorf("status %s has no row in the transition table", from))
			continue
		}

		for role, targets := range row {
			if err := role.Validate(); err != nil {
				errList = append(errList, fmt.Errorf("status %s: %w", from, err))
			}
			if from.IsTerminal() && len(targets) > 0 {
				errList = append(errList, fmt.Errorf("terminal status %s has outgoing transitions for %s", from, role))
			}
			for _, to := range targets {
				if err := to.Validate(); err != nil {
					errList = append(errList, fmt.Errorf("status %s: %w", from, err))
				}
				if to == from {
					errList = append(errList, fmt.Errorf("status %s has a self transition for %s", from, role))
				}
			}
		}
	}

	for from := range t {
		if err := from.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("transition table row: %w", err))
		}
	}

	return errors.Join(errList...)
}

// Targets returns the statuses role may move an order in status from to.
func (t TransitionTable) Targets(from Status, role user.Role) []Status {
	return slices.Clone(t[from][role])
}

// CanWrite reports whether role appears anywhere in the table.
func (t TransitionTable) CanWrite(role user.Role) bool {
	for _, row := range t {
		if len(row[role]) > 0 {
			return true
		}
	}
	return false
}

// Check decides whether role may move an order from one status to another.
//
// Terminal statuses reject every change with InvalidTransitionError regardless
// of role. Otherwise a role with no write transitions gets AccessDeniedError and
// any pair not listed for the role gets InvalidTransitionError.
func (t TransitionTable) Check(role user.Role, from, to Status) error {
	if from.IsTerminal() {
		return errs.NewInvalidTransitionError(from.String(), to.String())
	}
	if !t.CanWrite(role) {
		return errs.NewAccessDeniedError(role.String(), "change order status")
	}
	if !slices.Contains(t[from][role], to) {
		return errs.NewInvalidTransitionError(from.String(), to.String())
	}
	return nil
}
