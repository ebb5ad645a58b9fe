package queries

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderResponse is the read model shared by every order query. CustomerName
// is joined from users and may be empty when the customer row is gone.
type OrderResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	CustomerName    string
	Status          order.Status
	Items           []OrderItemResponse
	Total           decimal.Decimal
	PaymentMethod   order.PaymentMethod
	DeliveryAddress string
	DriverID        *kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItemResponse is one priced line of an order.
type OrderItemResponse struct {
	ProductID int64
	NameEn    string
	NameAr    string
	Quantity  int
	UnitPrice decimal.Decimal
}
