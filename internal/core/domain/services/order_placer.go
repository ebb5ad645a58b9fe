package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

// MaxQuantity caps the merged quantity of one product in one order.
const MaxQuantity = 10000

// Line is a requested (product, quantity) pair as sent by the customer.
type Line struct {
	ProductID product.ID
	Quantity  int
}

// OrderPlacer builds new orders against the current catalog.
//
// Business rules:
//   - unit prices come from the catalog, never from the request
//   - several lines for one product are merged into one item
//   - every product must hold enough stock for its merged quantity
//   - stock is taken from the products only when the whole order fits
//
// Example usage:
//
//	placer := services.NewOrderPlacer()
//	lines, _ := services.MergeLines(requested)
//	products := loadAndLock(lines) // ascending product id
//	o, err := placer.Place(orderID, customer, lines, products, address, order.Cash, now)
type OrderPlacer struct{}

func NewOrderPlacer() OrderPlacer {
	return OrderPlacer{}
}

// MergeLines validates quantities, merges lines for the same product and sorts
// the result by ascending product id. That order is also the lock order used
// when the products are loaded.
func MergeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	quantities := make(map[product.ID]int, len(lines))
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if line.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("items[%d]: %d is not greater than 0", i, line.Quantity),
			)
		}
		if line.Quantity > MaxQuantity-quantities[line.ProductID] {
			return nil, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("quantity of product %d", line.ProductID),
				line.Quantity, 1, MaxQuantity-quantities[line.ProductID],
			)
		}
		quantities[line.ProductID] += line.Quantity
	}

	merged := make([]Line, 0, len(quantities))
	for id, quantity := range quantities {
		merged = append(merged, Line{ProductID: id, Quantity: quantity})
	}
	slices.SortFunc(merged, func(a, b Line) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	return merged, nil
}

// Place prices the merged lines from products, takes the stock out of them and
// returns the new order.
//
// products must contain every product referenced by lines. On error no product
// is modified.
//
// Returns:
//   - ObjectNotFoundError when a product is missing from products
//   - InsufficientStockError for the first line that does not fit
//   - AccessDeniedError or validation errors from order.NewOrder
func (p OrderPlacer) Place(
	orderID kernel.UUID,
	customer user.Actor,
	lines []Line,
	products map[product.ID]*product.Product,
	deliveryAddress string,
	paymentMethod order.PaymentMethod,
	now time.Time,
) (*order.Order, error) {
	merged, err := MergeLines(lines)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(merged))
	for _, line := range merged {
		prod, ok := products[line.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", int64(line.ProductID))
		}
		if err := prod.Validate(); err != nil {
			return nil, err
		}
		if line.Quantity > prod.Stock() {
			return nil, errs.NewInsufficientStockError(int64(prod.ID()), line.Quantity, prod.Stock())
		}

		item, err := order.NewItem(prod.ID(), prod.Name(), line.Quantity, prod.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(orderID, customer, items, deliveryAddress, paymentMethod, now)
	if err != nil {
		return nil, err
	}

	for _, line := range merged {
		if err := products[line.ProductID].DecrementStock(line.Quantity); err != nil {
			return nil, errors.Join(errors.New("stock changed while placing order"), err)
		}
	}

	return o, nil
}
