package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/session"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	sessions      *session.Manager
	dashboardPath string
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(sessions *session.Manager, dashboardPath string) *HomeHandler {
	return &HomeHandler{sessions: sessions, dashboardPath: dashboardPath}
}

// HomeGet sends logged-in users to the dashboard and everyone else to the login page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	if _, err := h.sessions.Current(c); err == nil {
		return c.Redirect(http.StatusSeeOther, h.dashboardPath)
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
