package productrepo_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = productrepo.NewGormProductRepository(suite.database.DB)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	suite.addProduct(3, "4.75", 9)

	p, err := suite.repository.Get(ctx, 3)

	suite.Require().NoError(err)
	suite.Equal(product.ID(3), p.ID())
	suite.Equal("Item 3", p.Name().En)
	suite.Equal("بقالة", p.Category().Ar)
	suite.Equal("4.75", p.Price().String())
	suite.Equal(9, p.Stock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetForUpdate() {
	ctx := context.Background()
	suite.addProduct(1, "1.00", 1)
	suite.addProduct(2, "2.00", 2)
	suite.addProduct(3, "3.00", 3)

	err := suite.database.DB.Transaction(func(tx *gorm.DB) error {
		products, err := productrepo.NewGormProductRepository(tx).GetForUpdate(ctx, []product.ID{3, 1, 3})
		suite.Require().NoError(err)
		suite.Len(products, 2)
		suite.Equal(3, products[3].Stock())
		suite.Equal(1, products[1].Stock())

		_, err = productrepo.NewGormProductRepository(tx).GetForUpdate(ctx, []product.ID{1, 99})
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock() {
	ctx := context.Background()
	suite.addProduct(1, "1.00", 5)

	suite.Require().NoError(suite.repository.DecrementStock(ctx, 1, 2))

	err := suite.repository.DecrementStock(ctx, 1, 4)
	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(4, stockErr.Requested)
	suite.Equal(3, stockErr.Available)

	suite.Require().NoError(suite.repository.DecrementStock(ctx, 1, 3))
	suite.Equal(0, suite.stock(1))

	suite.Require().ErrorIs(suite.repository.DecrementStock(ctx, 77, 1), errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.DecrementStock(ctx, 1, 0), errs.ErrValueIsOutOfRange)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestStockCheckConstraint() {
	suite.addProduct(1, "1.00", 1)

	err := suite.database.DB.Exec("UPDATE products SET stock = -1 WHERE id = 1").Error

	var pgErr *pgconn.PgError
	suite.Require().ErrorAs(err, &pgErr)
	suite.Equal("23514", pgErr.Code)
	suite.Equal(1, suite.stock(1))
}

// Concurrent decrements never oversell: successes × quantity equals the
// starting stock and the final stock is zero.
func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock_Concurrent() {
	ctx := context.Background()
	const (
		initialStock = 10
		workers      = 25
	)
	suite.addProduct(1, "1.00", initialStock)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.database.DB.Transaction(func(tx *gorm.DB) error {
				return productrepo.NewGormProductRepository(tx).DecrementStock(ctx, 1, 1)
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, errs.ErrInsufficientStock):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(initialStock), succeeded.Load())
	suite.Equal(int32(workers-initialStock), rejected.Load())
	suite.Equal(0, suite.stock(1))
}

func (suite *ProductRepositoryIntegrationTestSuite) addProduct(id product.ID, price string, stock int) {
	m, err := kernel.MoneyFromString(price)
	suite.Require().NoError(err)
	p, err := product.NewProduct(
		id,
		product.LocalizedText{En: fmt.Sprintf("Item %d", id), Ar: "عنصر"},
		product.LocalizedText{},
		product.LocalizedText{En: "Groceries", Ar: "بقالة"},
		m, stock, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
}

func (suite *ProductRepositoryIntegrationTestSuite) stock(id product.ID) int {
	var dto productrepo.ProductDTO
	suite.Require().NoError(suite.database.DB.First(&dto, "id = ?", int64(id)).Error)
	return dto.Stock
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
