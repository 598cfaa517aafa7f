// Package app wires the portal services into a samber/do container shared by
// the web server and the CLI.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/nfrund/portal/internal/audit"
	"github.com/nfrund/portal/internal/authapi"
	"github.com/nfrund/portal/internal/config"
	"github.com/nfrund/portal/internal/logging"
	"github.com/nfrund/portal/internal/login"
	"github.com/nfrund/portal/internal/pubsub"
	"github.com/nfrund/portal/internal/server"
	"github.com/nfrund/portal/internal/session"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// App owns the dependency container. Services are built lazily on first use.
type App struct {
	injector *do.RootScope
}

// Option customises App construction.
type Option func(*options)

type options struct {
	logOutput io.Writer
}

// WithLogOutput sends log output to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// New registers every service provider for cfg.
func New(cfg *config.Config, opts ...Option) *App {
	o := options{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue[config.Provider](i, cfg)

	do.Provide(i, func(i do.Injector) (*slog.Logger, error) {
		cfg := do.MustInvoke[config.Provider](i)
		logger := logging.NewWithWriter(o.logOutput, cfg.GetLogFormat(), cfg.GetLogLevel())
		slog.SetDefault(logger)
		return logger, nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})

	do.Provide(i, func(i do.Injector) (*authapi.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return authapi.NewClient(cfg.GetAuthLoginURL(), cfg.GetAuthTimeout()), nil
	})

	do.Provide(i, func(i do.Injector) (*login.Service, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return login.NewService(
			do.MustInvoke[*authapi.Client](i),
			login.NewGuard(),
			do.MustInvoke[*pubsub.WatermillBridge](i),
			cfg.GetDashboardPath(),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*session.Manager, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return session.NewManager(cfg.GetSessionName(), afero.NewOsFs(), cfg.GetSessionDir()), nil
	})

	do.Provide(i, func(i do.Injector) (*session.FileStore, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return session.NewFileStore(afero.NewOsFs(), cfg.GetSessionFile()), nil
	})

	do.Provide(i, func(i do.Injector) (*audit.Subscriber, error) {
		return audit.NewSubscriber(do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*server.Server, error) {
		s, err := server.New(
			do.MustInvoke[config.Provider](i),
			do.MustInvoke[*login.Service](i),
			do.MustInvoke[*session.Manager](i),
		)
		if err != nil {
			return nil, err
		}
		s.RegisterRoutes()
		return s, nil
	})

	return &App{injector: i}
}

// Injector exposes the container for callers that need a service directly.
func (a *App) Injector() do.Injector {
	return a.injector
}

// Logger returns the configured application logger.
func (a *App) Logger() *slog.Logger {
	return do.MustInvoke[*slog.Logger](a.injector)
}

// Logins returns the login service.
func (a *App) Logins() *login.Service {
	return do.MustInvoke[*login.Service](a.injector)
}

// FileStore returns the CLI session store.
func (a *App) FileStore() *session.FileStore {
	return do.MustInvoke[*session.FileStore](a.injector)
}

// Server returns the HTTP server with routes registered.
func (a *App) Server() (*server.Server, error) {
	return do.Invoke[*server.Server](a.injector)
}

// StartAudit attaches the audit subscriber to the event bus.
func (a *App) StartAudit(ctx context.Context) error {
	return do.MustInvoke[*audit.Subscriber](a.injector).Start(ctx, do.MustInvoke[*pubsub.WatermillBridge](a.injector))
}

// Shutdown closes the event bus and releases the container.
func (a *App) Shutdown() {
	if bridge, err := do.Invoke[*pubsub.WatermillBridge](a.injector); err == nil {
		if err := bridge.Close(); err != nil {
			slog.Warn("Failed to close event bus", "error", err)
		}
	}
	a.injector.Shutdown()
}
