package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/authapi"
	"github.com/nfrund/portal/internal/config"
	"github.com/nfrund/portal/internal/domain"
	"github.com/nfrund/portal/internal/login"
	"github.com/nfrund/portal/internal/middleware"
	"github.com/nfrund/portal/internal/session"
	"github.com/nfrund/portal/internal/view"
	"github.com/nfrund/portal/internal/view/dto/auth"
	"github.com/nfrund/portal/web/src/templates/layouts"
	"github.com/nfrund/portal/web/src/templates/pages"
)

// LoginPath is where the login form lives.
const LoginPath = "/auth/login"

const (
	msgInFlight      = "A login request is already in progress."
	msgSessionFailed = "You were authenticated but we could not start your session. Please try again."
	msgBadForm       = "Could not read the login form. Please try again."
	msgTokenExpired  = "Your login expired before the session could start. Please log in again."
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	logins   *login.Service
	sessions *session.Manager
	cfg      config.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logins *login.Service, sessions *session.Manager, cfg config.Provider) *AuthHandler {
	return &AuthHandler{
		logins:   logins,
		sessions: sessions,
		cfg:      cfg,
	}
}

// LoginGetHandler renders the login page (GET /auth/login).
// Values from a failed submission are restored from the flash session.
func (h *AuthHandler) LoginGetHandler(c echo.Context) error {
	email, keep := view.PopFormState(c)
	flashes := view.GetFlashData(c)

	data := auth.LoginData{
		Email:             email,
		KeepLoggedIn:      keep,
		SubmissionID:      uuid.NewString(),
		ForgotPasswordURL: h.cfg.GetForgotPasswordPath(),
		SignupURL:         h.cfg.GetSignupPath(),
	}
	for _, p := range h.cfg.GetSocialProviders() {
		data.SocialProviders = append(data.SocialProviders, auth.SocialLink{Name: p.Name, URL: p.URL})
	}

	page := layouts.Base("Login", flashes, view.AdaptGomponentToTempl(pages.Login(data)))
	return c.Render(http.StatusOK, "", page)
}

// LoginPost handles the form submission for logging in a user (POST /auth/login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var form login.Form
	if err := c.Bind(&form); err != nil {
		logger.Warn("Failed to bind login form", "error", err)
		view.SetFlashError(c, msgBadForm)
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}

	err := h.logins.Submit(c.Request().Context(), login.ChannelWeb, form, h.sessions.For(c), &redirectNavigator{c: c})
	if err == nil {
		return nil
	}

	view.SetFlashError(c, loginErrorMessage(err))
	view.SetFormState(c, form.Email, form.KeepLoggedIn)
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// Logout clears the session (POST /auth/logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// loginErrorMessage maps a submit error to the text shown to the user.
// Both auth failure kinds show the message carried by the error.
func loginErrorMessage(err error) string {
	if apiErr, ok := authapi.AsError(err); ok {
		return apiErr.Message
	}
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		return msgInFlight
	}
	if errors.Is(err, domain.ErrTokenExpired) {
		return msgTokenExpired
	}
	return msgSessionFailed
}

// redirectNavigator implements domain.Navigator with a 303 redirect.
type redirectNavigator struct {
	c echo.Context
}

func (n *redirectNavigator) Navigate(ctx context.Context, path string) error {
	view.SetFlashSuccess(n.c, "Logged in successfully!")
	return n.c.Redirect(http.StatusSeeOther, path)
}
