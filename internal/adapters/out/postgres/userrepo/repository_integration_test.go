package userrepo_test

import (
	"context"
	"testing"

	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = userrepo.NewGormUserRepository(suite.database.DB)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddAndLookup() {
	ctx := context.Background()
	u, err := user.NewUser(kernel.NewUUID(), "driver1", "secret", user.Driver)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, u))

	byName, err := suite.repository.GetByUsername(ctx, "driver1")
	suite.Require().NoError(err)
	suite.True(byName.ID().IsEqual(u.ID()))
	suite.Equal(user.Driver, byName.Role())
	suite.True(byName.CheckPassword("secret"))
	suite.False(byName.CheckPassword("Secret"))

	byID, err := suite.repository.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Equal("driver1", byID.Username())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateUsername() {
	ctx := context.Background()
	first, _ := user.NewUser(kernel.NewUUID(), "store1", "a", user.Store)
	second, _ := user.NewUser(kernel.NewUUID(), "store1", "b", user.Customer)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), `"store1" is already taken`)
}

func (suite *UserRepositoryIntegrationTestSuite) TestNotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByUsername(ctx, "nobody")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByUsername(ctx, "  ")
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
