package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/middleware"
)

// setupErrorHandling installs the central HTTP error handler. Errors that are
// not *echo.HTTPError are logged with a stack trace and answered with a 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				logger.Error("HTTP error", "status", he.Code, "error", err)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Path(),
			"stack_trace", string(debug.Stack()),
		)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
