package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey struct{}

// Logger puts a *slog.Logger tagged with the request ID, method and path into
// the request context. Login failures, session errors and rate-limit denials
// logged through FromContext can then be matched to the access log line.
// It reads the ID set by echo's RequestID middleware, so it must come after it.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		if reqID == "" {
			reqID = req.Header.Get(echo.HeaderXRequestID)
		}

		logger := slog.Default().With(
			"request_id", reqID,
			"method", req.Method,
			"path", req.URL.Path,
		)
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), ctxKey{}, logger)))
		return next(c)
	}
}

// FromContext returns the logger installed by Logger, or slog.Default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
