package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/portal/internal/authapi"
	"github.com/nfrund/portal/internal/domain"
	"github.com/nfrund/portal/internal/login/events"
	"github.com/nfrund/portal/internal/pubsub"
)

// Channel names identify where a submission came from in published events.
const (
	ChannelWeb = "web"
	ChannelCLI = "cli"
)

// Form is the state behind the login page: the two text inputs and the checkbox.
type Form struct {
	Email        string `form:"email"`
	Password     string `form:"password"`
	KeepLoggedIn bool   `form:"keep_logged_in"`
	// SubmissionID identifies one rendered form for the in-flight guard.
	SubmissionID string `form:"submission_id"`
}

// Credentials returns the request body for the auth backend. KeepLoggedIn is
// not part of it.
func (f Form) Credentials() domain.Credentials {
	return domain.Credentials{Email: f.Email, Password: f.Password}
}

// Service runs the submit sequence: authenticate, hand the payload to the
// session store, navigate to the dashboard.
type Service struct {
	auth          domain.Authenticator
	guard         *Guard
	publisher     pubsub.Publisher
	dashboardPath string
}

// NewService creates a login Service. publisher may be nil.
func NewService(auth domain.Authenticator, guard *Guard, publisher pubsub.Publisher, dashboardPath string) *Service {
	if guard == nil {
		guard = NewGuard()
	}
	return &Service{
		auth:          auth,
		guard:         guard,
		publisher:     publisher,
		dashboardPath: dashboardPath,
	}
}

// DashboardPath is where a successful login navigates to.
func (s *Service) DashboardPath() string {
	return s.dashboardPath
}

// Submit sends the form's credentials and, on success, calls
// store.Login(payload, form.KeepLoggedIn) followed by nav.Navigate(dashboard).
// On failure neither collaborator is called and the error is returned;
// authentication failures are *authapi.Error.
func (s *Service) Submit(ctx context.Context, channel string, form Form, store domain.SessionStore, nav domain.Navigator) error {
	release, err := s.guard.Acquire(form.SubmissionID)
	if err != nil {
		return err
	}
	defer release()

	data, err := s.auth.Login(ctx, form.Credentials())
	if err != nil {
		s.reportFailure(ctx, channel, form, err)
		return err
	}

	if err := store.Login(ctx, data, form.KeepLoggedIn); err != nil {
		return fmt.Errorf("failed to establish session: %w", err)
	}

	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, events.Succeeded, events.LoginSucceeded{
			Email:        form.Email,
			KeepLoggedIn: form.KeepLoggedIn,
			Channel:      channel,
		})
	})

	return nav.Navigate(ctx, s.dashboardPath)
}

func (s *Service) reportFailure(ctx context.Context, channel string, form Form, err error) {
	payload := events.LoginFailed{Email: form.Email, Message: err.Error(), Channel: channel}

	var apiErr *authapi.Error
	switch {
	case errors.As(err, &apiErr) && apiErr.Kind == authapi.KindHTTP:
		slog.Warn("Login rejected by auth backend", "email", form.Email, "status", apiErr.Status, "message", apiErr.Message)
		payload.Kind, payload.Status, payload.Message = apiErr.Kind.String(), apiErr.Status, apiErr.Message
	case errors.As(err, &apiErr):
		slog.Error("Auth backend unreachable", "email", form.Email, "error", err)
		payload.Kind = apiErr.Kind.String()
	default:
		slog.Error("Login failed", "email", form.Email, "error", err)
		payload.Kind = "unknown"
	}

	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, events.Failed, payload)
	})
}

// publish runs fn when a publisher is configured. Event delivery never
// changes the outcome of a login.
func (s *Service) publish(ctx context.Context, fn func() error) {
	if s.publisher == nil {
		return
	}
	if err := fn(); err != nil {
		slog.WarnContext(ctx, "Failed to publish login event", "error", err)
	}
}
