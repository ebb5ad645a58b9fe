package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// HeaderIdempotencyKey makes order creation safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type AuthenticateUserHandler interface {
	Handle(ctx context.Context, query queries.AuthenticateUserQuery) (queries.AuthenticateUserQueryResponse, error)
}

type ListAvailableProductsHandler interface {
	Handle(ctx context.Context, query queries.ListAvailableProductsQuery) ([]queries.ProductResponse, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
}

type ListDriverDeliveriesHandler interface {
	Handle(ctx context.Context, query queries.ListDriverDeliveriesQuery) ([]queries.OrderResponse, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	ChangeOrderStatus    ChangeOrderStatusHandler
	AuthenticateUser     AuthenticateUserHandler
	ListProducts         ListAvailableProductsHandler
	ListOrders           ListOrdersHandler
	GetOrder             GetOrderHandler
	ListDriverDeliveries ListDriverDeliveriesHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	tokens   *TokenIssuer
	logger   *slog.Logger
	now      func() time.Time
}

func NewServer(handlers Handlers, tokens *TokenIssuer, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger.With("component", "http_server"),
		now:      time.Now,
	}
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Health{Status: "OK", Timestamp: s.now().UTC()})
}

// Login handles POST /api/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewAuthenticateUserQuery(req.Username, req.Password)
	if err != nil {
		return s.writeError(ctx, err)
	}

	authenticated, err := s.handlers.AuthenticateUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	token, err := s.tokens.Issue(authenticated)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: User{
			ID:       authenticated.ID.String(),
			Username: authenticated.Username,
			Role:     authenticated.Role.String(),
		},
	})
}

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	products, err := s.handlers.ListProducts.Handle(ctx.Request().Context(), queries.NewListAvailableProductsQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]Product, 0, len(products))
	for _, p := range products {
		response = append(response, toProduct(p))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return forbidden(ctx)
	}

	var req NewOrder
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]services.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.Line{ProductID: product.ID(item.ID), Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor,
		kernel.NewUUID(),
		lines,
		req.DeliveryAddress,
		req.PaymentMethod,
		ctx.Request().Header.Get(HeaderIdempotencyKey),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	// A replayed Idempotency-Key returns the order of the first request, whose
	// id differs from the one generated for this command.
	status := http.StatusCreated
	if !created.ID().IsEqual(cmd.OrderID()) {
		status = http.StatusOK
	}
	return s.respondWithOrder(ctx, status, created.ID())
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return forbidden(ctx)
	}

	query, err := queries.NewListOrdersQuery(actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, id)
}

// ChangeOrderStatus handles PUT /api/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return forbidden(ctx)
	}

	id, err := orderIDParam(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req StatusUpdate
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, id, strings.TrimSpace(req.Status))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if _, err = s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, id)
}

// ListDriverDeliveries handles GET /api/driver/deliveries.
func (s *Server) ListDriverDeliveries(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return forbidden(ctx)
	}

	query, err := queries.NewListDriverDeliveriesQuery(actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.ListDriverDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// respondWithOrder renders the order read model as seen by the caller.
func (s *Server) respondWithOrder(ctx echo.Context, status int, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return forbidden(ctx)
	}

	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	found, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, toOrder(found))
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true},
	); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromString(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func forbidden(ctx echo.Context) error {
	return ctx.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Invalid token"})
}
