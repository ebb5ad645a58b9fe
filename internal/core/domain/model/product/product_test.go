package product_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *product.Product {
	t.Helper()

	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)

	p, err := product.NewProduct(
		1,
		product.LocalizedText{En: "Apple", Ar: "تفاح"},
		product.LocalizedText{En: "Fresh apple"},
		product.LocalizedText{En: "Fruit", Ar: "فواكه"},
		price,
		stock,
		"",
	)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("should create valid product", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.Validate())
		assert.Equal(t, product.ID(1), p.ID())
		assert.Equal(t, "Apple", p.Name().En)
		assert.Equal(t, "10.00", p.Price().String())
		assert.Equal(t, 5, p.Stock())
		assert.True(t, p.IsAvailable())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		p, err := product.NewProduct(0, product.LocalizedText{}, product.LocalizedText{},
			product.LocalizedText{}, kernel.ZeroMoney(), -1, "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "product id is invalid")
		assert.Contains(t, err.Error(), "name_en")
		assert.Contains(t, err.Error(), "category_en")
		assert.Contains(t, err.Error(), "stock is invalid")
	})

	t.Run("out of stock product is not available", func(t *testing.T) {
		p := newTestProduct(t, 0)

		assert.False(t, p.IsAvailable())
	})
}

func TestProduct_DecrementStock(t *testing.T) {
	t.Run("should decrement by quantity", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.DecrementStock(2))
		assert.Equal(t, 3, p.Stock())
	})

	t.Run("should allow draining stock to zero", func(t *testing.T) {
		p := newTestProduct(t, 2)

		require.NoError(t, p.DecrementStock(2))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should reject decrement below zero and keep stock", func(t *testing.T) {
		p := newTestProduct(t, 1)

		err := p.DecrementStock(2)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 2, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
		assert.Equal(t, 1, p.Stock())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 1)

		require.ErrorIs(t, p.DecrementStock(0), errs.ErrValueIsInvalid)
	})
}

func TestProduct_Validate(t *testing.T) {
	var p *product.Product
	require.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
}
