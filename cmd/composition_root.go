package cmd

import (
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	publisher   ports.EventPublisher
	idempotency ports.IdempotencyStore
}

// NewCompositionRoot wires the use cases. publisher and idempotency may be nil
// when Kafka or Redis are not configured.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	idempotency ports.IdempotencyStore,
) CompositionRoot {
	return CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:   publisher,
		idempotency: idempotency,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.idempotency)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOrderEventsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableProductsQueryHandler() queries.ListAvailableProductsQueryHandler {
	return queries.NewListAvailableProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDriverDeliveriesQueryHandler() queries.ListDriverDeliveriesQueryHandler {
	return queries.NewListDriverDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		AuthenticateUser:     c.CreateAuthenticateUserQueryHandler(),
		ListProducts:         c.CreateListAvailableProductsQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListDriverDeliveries: c.CreateListDriverDeliveriesQueryHandler(),
	}
}

func (c *CompositionRoot) CreateHTTPServer(logger *slog.Logger) *httpin.Server {
	tokens := httpin.NewTokenIssuer([]byte(c.configs.JWTSecret), c.configs.TokenTTL)
	return httpin.NewServer(c.CreateHTTPHandlers(), tokens, logger)
}

func (c *CompositionRoot) CreateRouterConfig() httpin.RouterConfig {
	cfg := httpin.DefaultRouterConfig()
	cfg.LoginRateLimit = c.configs.LoginRateLimit
	cfg.LoginBurst = c.configs.LoginBurst
	cfg.RequestTimeout = c.configs.RequestTimeout
	return cfg
}

// CreateJobManager schedules the outbox relay only when a publisher exists.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	if c.publisher == nil {
		return jobs.NewJobManager(nil, jobs.DefaultRelayBatchSize, logger)
	}
	return jobs.NewJobManager(c.CreateRelayOrderEventsCommandHandler(), jobs.DefaultRelayBatchSize, logger)
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
