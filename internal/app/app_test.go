package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfrund/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppAddr:            ":0",
		AppBaseURL:         "http://localhost:8080",
		AuthLoginURL:       config.DefaultAuthLoginURL,
		AuthTimeout:        time.Second,
		SessionSecret:      "0123456789abcdef0123456789abcdef",
		SessionName:        "portal-session",
		DashboardPath:      "/dashboard",
		SignupPath:         "/signup",
		ForgotPasswordPath: "/forgot-password",
		LogFormat:          "text",
		LogLevel:           "error",
		SessionFile:        filepath.Join(t.TempDir(), "session.json"),
		SessionDir:         filepath.Join(t.TempDir(), "sessions"),
	}
}

func TestApp_ServicesAreSingletons(t *testing.T) {
	a := New(testConfig(t), WithLogOutput(io.Discard))
	defer a.Shutdown()

	assert.Same(t, a.Logins(), a.Logins())
	assert.Same(t, a.FileStore(), a.FileStore())
	assert.Equal(t, "/dashboard", a.Logins().DashboardPath())
}

func TestApp_Server(t *testing.T) {
	a := New(testConfig(t), WithLogOutput(io.Discard))
	defer a.Shutdown()

	s, err := a.Server()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_ServerWithoutSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionSecret = ""
	a := New(cfg, WithLogOutput(io.Discard))
	defer a.Shutdown()

	_, err := a.Server()
	assert.Error(t, err)
}

func TestApp_StartAudit(t *testing.T) {
	a := New(testConfig(t), WithLogOutput(io.Discard))
	defer a.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, a.StartAudit(ctx))
}
