package user

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Role decides which order operations an actor may perform.
// Roles are fixed for the lifetime of a token.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota

	// Customer browses the catalog, places orders and reads its own orders.
	Customer

	// Store confirms, prepares and cancels any order.
	Store

	// Driver picks up ready orders and delivers them.
	Driver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Customer:    "customer",
		Store:       "store",
		Driver:      "driver",
	}
}

// Roles lists every valid role.
func Roles() []Role {
	return []Role{Customer, Store, Driver}
}

// ParseRole maps the wire name of a role onto its value.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if r.String() == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Validate accepts Customer, Store and Driver.
func (r Role) Validate() error {
	if r != Customer && r != Store && r != Driver {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name ("customer", "store", "driver").
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
