package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// VendorIDHeader carries the authenticated vendor id. The upstream auth
// gateway sets it after verifying the caller's session.
const VendorIDHeader = "X-Vendor-ID"

// vendorRoutesPrefix scopes VendorIdentity. The ordering system and operator
// routes under /api/v1/orders carry no vendor identity; the gateway admits
// only internal callers to them and this service does not check them itself.
const vendorRoutesPrefix = "/api/v1/vendor/"

var errUnauthenticated = errors.New("caller is not authenticated")

type vendorIDKey struct{}

// VendorIdentity resolves the calling vendor for every /api/v1/vendor route
// and stores it in the request context. Requests without a usable header are
// answered with 401.
func VendorIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Path(), vendorRoutesPrefix) {
				return next(c)
			}

			vendorID, err := kernel.NewVendorID(c.Request().Header.Get(VendorIDHeader))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: fmt.Sprintf("%s header is missing or invalid", VendorIDHeader),
				})
			}

			c.SetRequest(c.Request().WithContext(WithVendorID(c.Request().Context(), vendorID)))
			return next(c)
		}
	}
}

// WithVendorID returns a context carrying vendorID.
func WithVendorID(ctx context.Context, vendorID kernel.VendorID) context.Context {
	return context.WithValue(ctx, vendorIDKey{}, vendorID)
}

// VendorIDFromContext returns the vendor stored by VendorIdentity.
func VendorIDFromContext(ctx context.Context) (kernel.VendorID, bool) {
	vendorID, ok := ctx.Value(vendorIDKey{}).(kernel.VendorID)
	return vendorID, ok && vendorID.Validate() == nil
}

func vendorFrom(ctx echo.Context) (kernel.VendorID, error) {
	vendorID, ok := VendorIDFromContext(ctx.Request().Context())
	if !ok {
		return kernel.VendorID{}, fmt.Errorf("%w: no vendor identity on request", errUnauthenticated)
	}
	return vendorID, nil
}
