package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndItems() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))
	suite.True(loaded.CustomerID().IsEqual(testOrder.CustomerID()))
	suite.Equal(order.Placed, loaded.Status())
	suite.Equal("24.50", loaded.Total().String())
	suite.Equal(order.CreditCard, loaded.PaymentMethod())
	suite.Equal("1 Main St", loaded.DeliveryAddress())
	suite.Nil(loaded.DriverID())
	suite.WithinDuration(testOrder.CreatedAt(), loaded.CreatedAt(), time.Millisecond)

	items := loaded.Items()
	suite.Require().Len(items, 2)
	suite.Equal(product.ID(1), items[0].ProductID())
	suite.Equal("حليب", items[0].Name().Ar)
	suite.Equal(2, items[0].Quantity())
	suite.Equal("10.00", items[0].UnitPrice().String())
	suite.Equal(product.ID(2), items[1].ProductID())
	suite.Empty(loaded.DomainEvents())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatusDriverAndTimestamp() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(5)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	store := suite.actor(user.Store)
	driver := suite.actor(user.Driver)
	at := testOrder.CreatedAt()
	steps := []struct {
		actor user.Actor
		to    order.Status
	}{
		{store, order.Confirmed},
		{store, order.Preparing},
		{store, order.Ready},
		{driver, order.OutForDelivery},
	}
	for _, step := range steps {
		at = at.Add(time.Minute)
		from := testOrder.Status()
		suite.Require().NoError(testOrder.ChangeStatus(step.actor, step.to, at))
		suite.Require().NoError(suite.repository.Update(ctx, testOrder, from))
	}

	loaded, err := suite.repository.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OutForDelivery, loaded.Status())
	suite.Require().NotNil(loaded.DriverID())
	suite.True(loaded.DriverID().IsEqual(driver.ID()))
	suite.WithinDuration(at, loaded.UpdatedAt(), time.Millisecond)
	suite.Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleExpectedStatus() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	store := suite.actor(user.Store)
	suite.Require().NoError(testOrder.ChangeStatus(store, order.Confirmed, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Placed))

	// A second writer that still believes the order is placed.
	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ChangeStatus(store, order.Preparing, time.Now()))

	err = suite.repository.Update(ctx, testOrder, order.Placed)

	var transitionErr *errs.InvalidTransitionError
	suite.Require().ErrorAs(err, &transitionErr)
	suite.Equal("confirmed", transitionErr.From)
	suite.Equal("preparing", transitionErr.To)
	suite.Equal(order.Confirmed, stale.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.ChangeStatus(suite.actor(user.Store), order.Confirmed, time.Now()))

	err := suite.repository.Update(context.Background(), testOrder, order.Placed)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_InvalidOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) actor(role user.Role) user.Actor {
	a, err := user.NewActor(kernel.NewUUID(), role.String(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	milkPrice, _ := kernel.MoneyFromString("10.00")
	breadPrice, _ := kernel.MoneyFromString("2.25")
	milk, err := order.NewItem(1, product.LocalizedText{En: "Milk", Ar: "حليب"}, 2, milkPrice)
	suite.Require().NoError(err)
	bread, err := order.NewItem(2, product.LocalizedText{En: "Bread", Ar: "خبز"}, 2, breadPrice)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		suite.actor(user.Customer),
		[]order.Item{milk, bread},
		"1 Main St",
		order.CreditCard,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
