package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/middleware"
	"github.com/nfrund/portal/internal/view"
	"github.com/nfrund/portal/internal/view/dto/auth"
	"github.com/nfrund/portal/web/src/templates/layouts"
	"github.com/nfrund/portal/web/src/templates/pages"
)

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardGet shows the user's dashboard page.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	// RequireSession has already run and placed the session in the context.
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}

	data := auth.DashboardData{
		KeepLoggedIn: sess.KeepLoggedIn,
		LoggedInAt:   sess.CreatedAt,
		ExpiresAt:    sess.ExpiresAt,
		HasToken:     sess.Token != "",
	}
	page := layouts.Base("Dashboard", view.GetFlashData(c), view.AdaptGomponentToTempl(pages.Dashboard(data)))
	return c.Render(http.StatusOK, "", page)
}
