package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register an order placed by the ordering system
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Move the aggregate order status (operators only)
	// (PATCH /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId OrderId) error
	// Orders the calling vendor still has to work on
	// (GET /api/v1/vendor/orders/active)
	ListActiveVendorOrders(ctx echo.Context) error
	// Orders whose portion of the calling vendor is ready for pickup
	// (GET /api/v1/vendor/orders/ready-for-pickup)
	ListReadyForPickupOrders(ctx echo.Context) error
	// One order as seen by the calling vendor
	// (GET /api/v1/vendor/orders/{orderId})
	GetVendorOrder(ctx echo.Context, orderId OrderId) error
	// Confirm that the calling vendor's portion was picked up
	// (POST /api/v1/vendor/orders/{orderId}/pickup)
	ConfirmPickup(ctx echo.Context, orderId OrderId) error
	// Move the calling vendor's portion to a new status
	// (PATCH /api/v1/vendor/orders/{orderId}/portion)
	UpdateVendorPortion(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// ChangeOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

// ListActiveVendorOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListActiveVendorOrders(ctx echo.Context) error {
	ctx.Set(VendorHeaderScopes, []string{})
	return w.Handler.ListActiveVendorOrders(ctx)
}

// ListReadyForPickupOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListReadyForPickupOrders(ctx echo.Context) error {
	ctx.Set(VendorHeaderScopes, []string{})
	return w.Handler.ListReadyForPickupOrders(ctx)
}

// GetVendorOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetVendorOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(VendorHeaderScopes, []string{})
	return w.Handler.GetVendorOrder(ctx, orderId)
}

// ConfirmPickup converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmPickup(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(VendorHeaderScopes, []string{})
	return w.Handler.ConfirmPickup(ctx, orderId)
}

// UpdateVendorPortion converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateVendorPortion(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(VendorHeaderScopes, []string{})
	return w.Handler.UpdateVendorPortion(ctx, orderId)
}

// ------------- Path parameter "orderId" -------------
func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.GET(baseURL+"/api/v1/vendor/orders/active", wrapper.ListActiveVendorOrders)
	router.GET(baseURL+"/api/v1/vendor/orders/ready-for-pickup", wrapper.ListReadyForPickupOrders)
	router.GET(baseURL+"/api/v1/vendor/orders/:orderId", wrapper.GetVendorOrder)
	router.POST(baseURL+"/api/v1/vendor/orders/:orderId/pickup", wrapper.ConfirmPickup)
	router.PATCH(baseURL+"/api/v1/vendor/orders/:orderId/portion", wrapper.UpdateVendorPortion)
}
