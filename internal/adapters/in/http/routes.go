// Package http exposes the order use cases over the REST contract in
// api/openapi.yaml.
package http

import (
	"vendorhub/internal/generated/servers"
	"vendorhub/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Register installs the middleware chain, every API route and the
// documentation UI on e.
func Register(e *echo.Echo, server *Server) error {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return err
	}

	validator, err := RequestValidator(swagger)
	if err != nil {
		return err
	}

	e.HTTPErrorHandler = ErrorHandler(e)
	e.Use(
		metrics.EchoMiddleware(),
		middleware.Recover(),
		VendorIdentity(),
		validator,
	)

	servers.RegisterHandlers(e, server)
	return RegisterSwaggerUI(e, swagger)
}
