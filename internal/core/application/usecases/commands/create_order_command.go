package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header.
const maxIdempotencyKeyLength = 255

// CreateOrderCommand represents a customer placing an order.
// Any client-side total is not part of the command; totals are always computed
// from catalog prices.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(),
//	    []services.Line{{ProductID: 1, Quantity: 2}}, "1 Main St", "cash", "")
//	if err != nil {
//	    return err // AccessDeniedError or validation error
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           user.Actor
	orderID         kernel.UUID
	lines           []services.Line
	deliveryAddress string
	paymentMethod   order.PaymentMethod
	idempotencyKey  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the role first, then validates the payload.
// An empty paymentMethod selects cash. idempotencyKey is optional.
func NewCreateOrderCommand(
	actor user.Actor,
	orderID kernel.UUID,
	lines []services.Line,
	deliveryAddress string,
	paymentMethod string,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if !actor.Is(user.Customer) {
		return CreateOrderCommand{}, errs.NewAccessDeniedError(actor.Role().String(), "place orders")
	}

	cmd := CreateOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns the merged lines sorted by product id.
func (c CreateOrderCommand) Lines() []services.Line {
	lines := make([]services.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// IdempotencyKey returns the client key scoped to the customer, or "".
func (c CreateOrderCommand) IdempotencyKey() string {
	if c.idempotencyKey == "" {
		return ""
	}
	return c.actor.ID().String() + ":" + c.idempotencyKey
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.Line) error {
	merged, err := services.MergeLines(lines)
	if err != nil {
		return err
	}
	c.lines = merged
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	parsed, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	c.paymentMethod = parsed
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("Idempotency-Key length", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
