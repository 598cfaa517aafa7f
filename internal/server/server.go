package server

import (
	"errors"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/portal/internal/config"
	"github.com/nfrund/portal/internal/handlers"
	"github.com/nfrund/portal/internal/login"
	"github.com/nfrund/portal/internal/middleware"
	"github.com/nfrund/portal/internal/rendering"
	portalsession "github.com/nfrund/portal/internal/session"
	"github.com/nfrund/portal/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E                *echo.Echo
	Cfg              config.Provider
	sessions         *portalsession.Manager
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New creates a new Server instance with middleware installed. Routes are
// added by RegisterRoutes.
func New(cfg config.Provider, logins *login.Service, sessionManager *portalsession.Manager) (*Server, error) {
	if cfg.GetSessionSecret() == "" {
		return nil, errors.New("SESSION_SECRET must be set to run the server")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(requestLoggerConfig()))
	e.Use(echomw.Recover())

	// One cookie store backs both the login session and the flash session.
	// The login session cookie only carries an ID; payloads stay in sessionManager.
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:                e,
		Cfg:              cfg,
		sessions:         sessionManager,
		homeHandler:      handlers.NewHomeHandler(sessionManager, cfg.GetDashboardPath()),
		authHandler:      handlers.NewAuthHandler(logins, sessionManager, cfg),
		dashboardHandler: handlers.NewDashboardHandler(),
	}, nil
}

func requestLoggerConfig() echomw.RequestLoggerConfig {
	return echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger := middleware.FromContext(c.Request().Context())
			if v.Error != nil {
				logger.Warn("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}
}
