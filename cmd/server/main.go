package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/portal/internal/app"
	"github.com/nfrund/portal/internal/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		// slog is configured from cfg, so fall back to the standard logger here.
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a := app.New(cfg)
	defer a.Shutdown()
	logger := a.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.StartAudit(ctx); err != nil {
		logger.Error("Failed to start audit subscriber", "error", err)
		os.Exit(1)
	}

	s, err := a.Server()
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
