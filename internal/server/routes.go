package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/handlers"
	"github.com/nfrund/portal/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(middleware.DefaultLoginRate)
	requireSession := middleware.RequireSession(s.sessions, handlers.LoginPath)

	s.E.GET("/", s.homeHandler.HomeGet)

	s.E.GET(handlers.LoginPath, s.authHandler.LoginGetHandler)
	s.E.POST(handlers.LoginPath, s.authHandler.LoginPost, rateLimiter)
	s.E.POST("/auth/logout", s.authHandler.Logout)

	s.E.GET(s.Cfg.GetDashboardPath(), s.dashboardHandler.DashboardGet, requireSession)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
