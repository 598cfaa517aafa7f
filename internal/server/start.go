package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	// shutdownTimeout bounds how long in-flight requests get to finish.
	shutdownTimeout = 10 * time.Second
	pruneInterval   = time.Hour
)

// Start runs the HTTP server until ctx is canceled, then shuts it down gracefully.
// Expired stored sessions are pruned in the background while it runs.
func (s *Server) Start(ctx context.Context) error {
	go s.pruneSessions(ctx, pruneInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.GetAppAddr())
		if err := s.E.Start(s.Cfg.GetAppAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.E.Shutdown(shutdownCtx)
}

func (s *Server) pruneSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.Prune()
			if err != nil {
				slog.Warn("Failed to prune sessions", "error", err)
				continue
			}
			if removed > 0 {
				slog.Debug("Pruned expired sessions", "removed", removed)
			}
		}
	}
}
