// Package orderrepo maps order aggregates onto the orders and order_items tables.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Timestamps come from the aggregate, so GORM's
// automatic time tracking is switched off.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(16);not null;default:cash"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	DriverID        *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items           []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order_items row. Position keeps the line order of the order.
type ItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID int64           `gorm:"not null;index"`
	NameEn    string          `gorm:"type:varchar(255);not null"`
	NameAr    string          `gorm:"type:varchar(255)"`
	Quantity  int             `gorm:"not null;check:order_items_quantity_positive,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			ProductID: int64(item.ProductID()),
			NameEn:    item.Name().En,
			NameAr:    item.Name().Ar,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		Status:          o.Status().String(),
		Total:           o.Total().Decimal(),
		PaymentMethod:   o.PaymentMethod().String(),
		DeliveryAddress: o.DeliveryAddress(),
		DriverID:        driverID,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(
			product.ID(itemDTO.ProductID),
			product.LocalizedText{En: itemDTO.NameEn, Ar: itemDTO.NameAr},
			itemDTO.Quantity,
			price,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID,
		items,
		total,
		paymentMethod,
		dto.DeliveryAddress,
		status,
		driverID,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
