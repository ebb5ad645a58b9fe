package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentMethod records how the customer intends to pay on delivery.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Cash
	CreditCard
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "unknown",
		Cash:                 "cash",
		CreditCard:           "credit_card",
	}
}

// ParsePaymentMethod maps a wire name onto a PaymentMethod. An empty string
// selects Cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "", "cash":
		return Cash, nil
	case "credit_card":
		return CreditCard, nil
	default:
		return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%q is not a valid payment method", s),
		)
	}
}

func (m PaymentMethod) Validate() error {
	if m != Cash && m != CreditCard {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
