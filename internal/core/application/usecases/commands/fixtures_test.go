package commands_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role user.Role) user.Actor {
	t.Helper()
	a, err := user.NewActor(kernel.NewUUID(), role.String()+"1", role)
	require.NoError(t, err)
	return a
}

func newProduct(t *testing.T, id product.ID, price string, stock int) *product.Product {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	p, err := product.NewProduct(id, product.LocalizedText{En: "Item"}, product.LocalizedText{},
		product.LocalizedText{En: "Groceries"}, m, stock, "")
	require.NoError(t, err)
	return p
}

func newPlacedOrder(t *testing.T, customer user.Actor) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString("4.00")
	require.NoError(t, err)
	item, err := order.NewItem(1, product.LocalizedText{En: "Item"}, 1, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item}, "1 Main St", order.Cash, time.Now())
	require.NoError(t, err)
	return o
}
