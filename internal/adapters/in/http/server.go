package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/application/usecases/queries"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	updatePortionHandler interface {
		Handle(ctx context.Context, cmd commands.UpdatePortionCommand) (order.VendorView, error)
	}
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	changeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}
	activeOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetActiveVendorOrdersQuery) ([]order.VendorView, error)
	}
	readyForPickupHandler interface {
		Handle(ctx context.Context, query queries.GetReadyForPickupOrdersQuery) ([]order.VendorView, error)
	}
	vendorOrderHandler interface {
		Handle(ctx context.Context, query queries.GetVendorOrderQuery) (order.VendorView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	UpdatePortion     updatePortionHandler
	CreateOrder       createOrderHandler
	ChangeOrderStatus changeOrderStatusHandler
	ActiveOrders      activeOrdersHandler
	ReadyForPickup    readyForPickupHandler
	VendorOrder       vendorOrderHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// ListActiveVendorOrders handles GET /api/v1/vendor/orders/active.
func (s *Server) ListActiveVendorOrders(ctx echo.Context) error {
	vendorID, err := vendorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetActiveVendorOrdersQuery(vendorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.listResponse(ctx, views)
}

// ListReadyForPickupOrders handles GET /api/v1/vendor/orders/ready-for-pickup.
func (s *Server) ListReadyForPickupOrders(ctx echo.Context) error {
	vendorID, err := vendorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetReadyForPickupOrdersQuery(vendorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ReadyForPickup.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.listResponse(ctx, views)
}

// GetVendorOrder handles GET /api/v1/vendor/orders/{orderId}.
func (s *Server) GetVendorOrder(ctx echo.Context, orderID servers.OrderId) error {
	vendorID, err := vendorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetVendorOrderQuery(id, vendorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.VendorOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return ctx.JSON(http.StatusOK, toVendorOrder(view))
}

// UpdateVendorPortion handles PATCH /api/v1/vendor/orders/{orderId}/portion.
// The response carries the order as stored after the update; views fetched
// before it are stale.
func (s *Server) UpdateVendorPortion(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.UpdateVendorPortionJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.ParsePortionStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	var items []order.Item
	if body.Items != nil {
		if items, err = toItems(*body.Items); err != nil {
			return s.fail(ctx, err)
		}
	}

	return s.updatePortion(ctx, orderID, status, items)
}

// ConfirmPickup handles POST /api/v1/vendor/orders/{orderId}/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context, orderID servers.OrderId) error {
	return s.updatePortion(ctx, orderID, order.PortionPickedUp, nil)
}

// CreateOrder handles POST /api/v1/orders - registers an order from the ordering system.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := toCreateOrderCommand(body, time.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/vendor/orders/"+cmd.OrderID().String())
	return ctx.NoContent(http.StatusCreated)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := order.ParseOverallStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) updatePortion(
	ctx echo.Context,
	orderID servers.OrderId,
	status order.PortionStatus,
	items []order.Item,
) error {
	vendorID, err := vendorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdatePortionCommand(id, vendorID, status, items)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.UpdatePortion.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toVendorOrder(view))
}

func (s *Server) listResponse(ctx echo.Context, views []order.VendorView) error {
	response := make([]servers.VendorOrder, 0, len(views))
	for _, v := range views {
		response = append(response, toVendorOrder(v))
	}

	ctx.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return ctx.JSON(http.StatusOK, response)
}
