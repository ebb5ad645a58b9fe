package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of the ordering workflow. It owns the line items,
// the total and the lifecycle status.
//
// Order follows these invariants:
//   - items are non-empty and total equals the sum of their line totals
//   - the delivery address is present
//   - status only changes through ChangeStatus, following DefaultTransitions
//   - delivered and cancelled orders never change again
//   - driverID is set exactly when a driver takes the order out for delivery
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	items           []Item
	total           kernel.Money
	paymentMethod   PaymentMethod
	deliveryAddress string
	status          Status

	// driverID is nil until the order goes out for delivery.
	driverID *kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places a new order on behalf of customer.
//
// The total is computed from the items; callers never supply it. The new
// order starts in Placed and carries an order.placed event.
//
// Returns AccessDeniedError when the actor is not a customer, and validation
// errors for missing items or address and unknown payment methods.
func NewOrder(
	id kernel.UUID,
	customer user.Actor,
	items []Item,
	deliveryAddress string,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if !customer.Is(user.Customer) {
		return nil, errs.NewAccessDeniedError(customer.Role().String(), "place orders")
	}

	o := &Order{
		customerID:    customer.ID(),
		status:        Placed,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.total = sumItems(o.items)
	o.raisePlaced(now)

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. No events are raised.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []Item,
	total kernel.Money,
	paymentMethod PaymentMethod,
	deliveryAddress string,
	status Status,
	driverID *kernel.UUID,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		total:         total,
		driverID:      driverID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the driver who took the order, or nil.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// VisibleTo reports whether actor may read the order. Customers see only their
// own orders; store and driver staff see every order.
func (o *Order) VisibleTo(actor user.Actor) bool {
	if actor.Is(user.Customer) {
		return o.customerID.IsEqual(actor.ID())
	}
	return true
}

// ChangeStatus moves the order to target on behalf of actor.
//
// The move is checked against DefaultTransitions. On success updatedAt is set
// to now, the driver is recorded when the order goes out for delivery and an
// order.status_changed event is raised. On failure the order is unchanged.
//
// Example:
//
//	if err := o.ChangeStatus(store, order.Confirmed, time.Now()); err != nil {
//	    // AccessDeniedError or InvalidTransitionError
//	}
func (o *Order) ChangeStatus(actor user.Actor, target Status, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := DefaultTransitions().Check(actor.Role(), o.status, target); err != nil {
		return err
	}

	from := o.status
	o.status = target
	o.updatedAt = now
	if target == OutForDelivery {
		driverID := actor.ID()
		o.driverID = &driverID
	}

	o.raiseStatusChanged(actor, from, now)
	return nil
}

// DomainEvents returns events raised since the last PullDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// PullDomainEvents returns pending events and clears them.
func (o *Order) PullDomainEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func sumItems(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d was not created via NewItem", i))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
