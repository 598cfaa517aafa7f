package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/domain"
	"github.com/nfrund/portal/internal/session"
)

// SessionContextKey is where RequireSession stores the *session.Session.
const SessionContextKey = "session"

// RequireSession protects routes that need an established login. Requests
// without a valid session are redirected to loginPath.
func RequireSession(sessions *session.Manager, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Current(c)
			if err != nil {
				if !errors.Is(err, domain.ErrNoSession) {
					FromContext(c.Request().Context()).Error("Failed to read session", "error", err)
				}
				// Expired or unreadable cookies are cleared so the browser stops sending them.
				_ = sessions.Clear(c)
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			c.Set(SessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(c echo.Context) (*session.Session, bool) {
	sess, ok := c.Get(SessionContextKey).(*session.Session)
	return sess, ok
}
