package http

import (
	"errors"
	"net/http"

	"vendorhub/internal/generated/servers"
	"vendorhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the core's error classes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int, err error) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return err.Error()
	case http.StatusNotFound:
		return "Order not found"
	case http.StatusForbidden:
		return "Order has no portion of this vendor"
	case http.StatusConflict:
		if errors.Is(err, errs.ErrConflict) {
			return "Order was changed concurrently, retry the request"
		}
		return err.Error()
	case http.StatusGatewayTimeout:
		return "Order store did not respond in time"
	default:
		return "Internal server error"
	}
}

// fail writes err as a servers.Error. Unexpected errors are logged and never
// shown to the caller.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"route", ctx.Path(),
			"error", err)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: messageFor(status, err),
	})
}

// ErrorHandler renders errors that never reached a Server method, such as
// unknown routes or malformed path parameters, in the servers.Error shape.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			e.Logger.Error(err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, servers.Error{Code: code, Message: message})
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
