package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyEmail    = "form_email"
	flashKeyKeep     = "form_keep_logged_in"
)

// FlashData holds the one-shot messages rendered at the top of a page.
type FlashData struct {
	Success []string
	Error   []string
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key string, value interface{}) {
	sess, err := session.Get(flashSessionName, c)
	if sess == nil {
		slog.Error("Failed to load flash session", "error", err)
		return
	}
	sess.AddFlash(value, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash session", "error", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears the success and error flash messages.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	// An undecodable cookie still yields a usable empty session.
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return data
	}

	// Flashes() returns and removes the values, so the session must be saved afterwards.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))

	if len(data.Success) > 0 || len(data.Error) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

// SetFormState remembers the non-secret login form values for the next render.
func SetFormState(c echo.Context, email string, keepLoggedIn bool) {
	sess, err := session.Get(flashSessionName, c)
	if sess == nil {
		slog.Error("Failed to load flash session", "error", err)
		return
	}
	sess.AddFlash(email, flashKeyEmail)
	sess.AddFlash(keepLoggedIn, flashKeyKeep)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash session", "error", err)
	}
}

// PopFormState returns and clears the values stored by SetFormState.
func PopFormState(c echo.Context) (email string, keepLoggedIn bool) {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return "", false
	}

	emails := sess.Flashes(flashKeyEmail)
	keeps := sess.Flashes(flashKeyKeep)
	if len(emails) > 0 {
		email, _ = emails[0].(string)
	}
	if len(keeps) > 0 {
		keepLoggedIn, _ = keeps[0].(bool)
	}
	if len(emails) > 0 || len(keeps) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return email, keepLoggedIn
}

func toStrings(values []interface{}) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
