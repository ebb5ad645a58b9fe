package services_test

import (
	"math"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newProduct(t *testing.T, id product.ID, price string, stock int) *product.Product {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	p, err := product.NewProduct(
		id,
		product.LocalizedText{En: "Item", Ar: "عنصر"},
		product.LocalizedText{},
		product.LocalizedText{En: "Groceries", Ar: "بقالة"},
		m, stock, "",
	)
	require.NoError(t, err)
	return p
}

func newCustomer(t *testing.T) user.Actor {
	t.Helper()
	a, err := user.NewActor(kernel.NewUUID(), "customer1", user.Customer)
	require.NoError(t, err)
	return a
}

func TestMergeLines(t *testing.T) {
	t.Run("should merge duplicates and sort by product id", func(t *testing.T) {
		merged, err := services.MergeLines([]services.Line{
			{ProductID: 9, Quantity: 1},
			{ProductID: 2, Quantity: 2},
			{ProductID: 9, Quantity: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, []services.Line{
			{ProductID: 2, Quantity: 2},
			{ProductID: 9, Quantity: 4},
		}, merged)
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := services.MergeLines(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		_, err := services.MergeLines([]services.Line{{ProductID: 1, Quantity: 0}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = services.MergeLines([]services.Line{{ProductID: 1, Quantity: -2}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject merged quantities past the cap", func(t *testing.T) {
		_, err := services.MergeLines([]services.Line{
			{ProductID: 1, Quantity: math.MaxInt},
			{ProductID: 1, Quantity: math.MaxInt},
			{ProductID: 1, Quantity: 3},
		})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = services.MergeLines([]services.Line{
			{ProductID: 1, Quantity: services.MaxQuantity},
			{ProductID: 1, Quantity: 1},
		})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should accept a merged quantity at the cap", func(t *testing.T) {
		merged, err := services.MergeLines([]services.Line{
			{ProductID: 1, Quantity: services.MaxQuantity - 1},
			{ProductID: 1, Quantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, []services.Line{{ProductID: 1, Quantity: services.MaxQuantity}}, merged)
	})

	t.Run("should reject invalid product ids", func(t *testing.T) {
		_, err := services.MergeLines([]services.Line{{ProductID: 0, Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderPlacer_Place(t *testing.T) {
	placer := services.NewOrderPlacer()
	customer := newCustomer(t)

	t.Run("should price from catalog and take stock", func(t *testing.T) {
		milk := newProduct(t, 1, "10.00", 5)
		bread := newProduct(t, 2, "2.25", 3)
		products := map[product.ID]*product.Product{1: milk, 2: bread}

		o, err := placer.Place(kernel.NewUUID(), customer, []services.Line{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
			{ProductID: 1, Quantity: 1},
		}, products, "1 Main St", order.Cash, now)

		require.NoError(t, err)
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, "24.50", o.Total().String())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, 2, o.Items()[0].Quantity())
		assert.Equal(t, "10.00", o.Items()[0].UnitPrice().String())
		assert.Equal(t, 3, milk.Stock())
		assert.Equal(t, 1, bread.Stock())
	})

	t.Run("should leave stock untouched when one line does not fit", func(t *testing.T) {
		milk := newProduct(t, 1, "10.00", 5)
		bread := newProduct(t, 2, "2.25", 1)
		products := map[product.ID]*product.Product{1: milk, 2: bread}

		o, err := placer.Place(kernel.NewUUID(), customer, []services.Line{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 4},
		}, products, "1 Main St", order.Cash, now)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Nil(t, o)
		assert.Equal(t, 5, milk.Stock())
		assert.Equal(t, 1, bread.Stock())

		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(2), stockErr.ProductID)
		assert.Equal(t, 4, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
	})

	t.Run("should report unknown products", func(t *testing.T) {
		_, err := placer.Place(kernel.NewUUID(), customer, []services.Line{{ProductID: 42, Quantity: 1}},
			map[product.ID]*product.Product{}, "1 Main St", order.Cash, now)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should leave stock untouched when the order is invalid", func(t *testing.T) {
		milk := newProduct(t, 1, "10.00", 5)

		_, err := placer.Place(kernel.NewUUID(), customer, []services.Line{{ProductID: 1, Quantity: 1}},
			map[product.ID]*product.Product{1: milk}, "", order.Cash, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, 5, milk.Stock())
	})

	t.Run("should reject non-customers", func(t *testing.T) {
		store, err := user.NewActor(kernel.NewUUID(), "store1", user.Store)
		require.NoError(t, err)
		milk := newProduct(t, 1, "10.00", 5)

		_, err = placer.Place(kernel.NewUUID(), store, []services.Line{{ProductID: 1, Quantity: 1}},
			map[product.ID]*product.Product{1: milk}, "1 Main St", order.Cash, now)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, 5, milk.Stock())
	})
}
