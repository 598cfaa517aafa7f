// Package audit records login outcomes published on the event bus.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/portal/internal/login/events"
	"github.com/nfrund/portal/internal/pubsub"
)

// Subscriber writes one structured log line per login event.
type Subscriber struct {
	logger *slog.Logger
}

// NewSubscriber creates an audit Subscriber. A nil logger uses slog.Default.
func NewSubscriber(logger *slog.Logger) *Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriber{logger: logger.With("component", "audit")}
}

// Start subscribes to the login events. Delivery stops when ctx is canceled
// or the bus is closed.
func (s *Subscriber) Start(ctx context.Context, sub pubsub.Subscriber) error {
	if err := pubsub.Subscribe(ctx, sub, events.Succeeded, s.onSucceeded); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.Succeeded.Name(), err)
	}
	if err := pubsub.Subscribe(ctx, sub, events.Failed, s.onFailed); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.Failed.Name(), err)
	}
	return nil
}

func (s *Subscriber) onSucceeded(ctx context.Context, e events.LoginSucceeded) error {
	s.logger.InfoContext(ctx, "login succeeded",
		"event", events.Succeeded.Name(),
		"email", e.Email,
		"keep_logged_in", e.KeepLoggedIn,
		"channel", e.Channel,
	)
	return nil
}

func (s *Subscriber) onFailed(ctx context.Context, e events.LoginFailed) error {
	s.logger.WarnContext(ctx, "login failed",
		"event", events.Failed.Name(),
		"email", e.Email,
		"kind", e.Kind,
		"status", e.Status,
		"message", e.Message,
		"channel", e.Channel,
	)
	return nil
}
