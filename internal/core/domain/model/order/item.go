package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

// Item is a line of an order. Name and unit price are copied from the catalog
// when the order is placed and never change afterwards.
type Item struct {
	productID product.ID
	name      product.LocalizedText
	quantity  int
	unitPrice kernel.Money
}

// NewItem validates a line snapshot.
func NewItem(productID product.ID, name product.LocalizedText, quantity int, unitPrice kernel.Money) (Item, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if err := errors.Join(productID.Validate(), quantityErr); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i Item) ProductID() product.ID {
	return i.productID
}

func (i Item) Name() product.LocalizedText {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal is unit price × quantity.
func (i Item) LineTotal() kernel.Money {
	total, _ := i.unitPrice.Multiply(i.quantity) // quantity is positive after NewItem
	return total
}
