package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. They double as environment variable names.
const (
	KeyAppAddr            = "APP_ADDR"
	KeyAppBaseURL         = "APP_BASE_URL"
	KeyAuthLoginURL       = "AUTH_LOGIN_URL"
	KeyAuthTimeout        = "AUTH_TIMEOUT"
	KeySessionSecret      = "SESSION_SECRET"
	KeySessionName        = "SESSION_NAME"
	KeyDashboardPath      = "DASHBOARD_PATH"
	KeySignupPath         = "SIGNUP_PATH"
	KeyForgotPasswordPath = "FORGOT_PASSWORD_PATH"
	KeySocialProviders    = "SOCIAL_PROVIDERS"
	KeyLogFormat          = "LOG_FORMAT"
	KeyLogLevel           = "LOG_LEVEL"
	KeySessionFile        = "SESSION_FILE"
	KeySessionDir         = "SESSION_DIR"
)

// DefaultAuthLoginURL is the login endpoint of a locally running auth backend.
const DefaultAuthLoginURL = "http://localhost:5000/api/auth/login"

// Provider exposes read access to the application configuration.
// Handlers and services depend on this rather than on *Config directly.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetAuthLoginURL() string
	GetAuthTimeout() time.Duration
	GetSessionSecret() string
	GetSessionName() string
	GetDashboardPath() string
	GetSignupPath() string
	GetForgotPasswordPath() string
	GetSocialProviders() []SocialProvider
	GetLogFormat() string
	GetLogLevel() string
	GetSessionFile() string
	GetSessionDir() string
}

// SocialProvider is an external sign-in option rendered as a link on the login page.
type SocialProvider struct {
	Name string `validate:"required"`
	URL  string `validate:"required,url"`
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr            string           `validate:"required"`
	AppBaseURL         string           `validate:"required,url"`
	AuthLoginURL       string           `validate:"required,url"`
	AuthTimeout        time.Duration    `validate:"gte=0"`
	SessionSecret      string           `validate:"omitempty,min=32"`
	SessionName        string           `validate:"required"`
	DashboardPath      string           `validate:"required,startswith=/"`
	SignupPath         string           `validate:"required"`
	ForgotPasswordPath string           `validate:"required"`
	SocialProviders    []SocialProvider `validate:"dive"`
	LogFormat          string           `validate:"oneof=text json"`
	LogLevel           string           `validate:"oneof=debug info warn error"`
	SessionFile        string           `validate:"required"`
	SessionDir         string           `validate:"required"`
}

// NewViper returns a viper instance with the application defaults applied and
// environment lookups enabled. A .env file in the working directory is loaded
// first if one exists.
func NewViper() *viper.Viper {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault(KeyAppAddr, ":8080")
	v.SetDefault(KeyAppBaseURL, "http://localhost:8080")
	v.SetDefault(KeyAuthLoginURL, DefaultAuthLoginURL)
	v.SetDefault(KeyAuthTimeout, 10*time.Second)
	v.SetDefault(KeySessionName, "portal-session")
	v.SetDefault(KeyDashboardPath, "/dashboard")
	v.SetDefault(KeySignupPath, "/signup")
	v.SetDefault(KeyForgotPasswordPath, "/forgot-password")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySessionFile, defaultSessionFile())
	v.SetDefault(KeySessionDir, filepath.Join(os.TempDir(), "portal-sessions"))
	v.AutomaticEnv()
	return v
}

// New loads configuration from the environment (and .env) using the defaults
// from NewViper.
func New() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper builds and validates a Config from an already populated viper instance.
// Callers that bind command-line flags use this after binding.
func FromViper(v *viper.Viper) (*Config, error) {
	providers, err := ParseSocialProviders(v.GetString(KeySocialProviders))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppAddr:            v.GetString(KeyAppAddr),
		AppBaseURL:         strings.TrimSuffix(v.GetString(KeyAppBaseURL), "/"),
		AuthLoginURL:       v.GetString(KeyAuthLoginURL),
		AuthTimeout:        v.GetDuration(KeyAuthTimeout),
		SessionSecret:      v.GetString(KeySessionSecret),
		SessionName:        v.GetString(KeySessionName),
		DashboardPath:      v.GetString(KeyDashboardPath),
		SignupPath:         v.GetString(KeySignupPath),
		ForgotPasswordPath: v.GetString(KeyForgotPasswordPath),
		SocialProviders:    providers,
		LogFormat:          strings.ToLower(v.GetString(KeyLogFormat)),
		LogLevel:           strings.ToLower(v.GetString(KeyLogLevel)),
		SessionFile:        v.GetString(KeySessionFile),
		SessionDir:         v.GetString(KeySessionDir),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseSocialProviders parses a comma separated list of name=url pairs.
// Order is preserved so the login page renders providers as configured.
func ParseSocialProviders(raw string) ([]SocialProvider, error) {
	var providers []SocialProvider
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, url, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("malformed %s entry %q, want name=url", KeySocialProviders, entry)
		}
		providers = append(providers, SocialProvider{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}
	return providers, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".portal-session.json"
	}
	return filepath.Join(dir, "portal", "session.json")
}

func (c *Config) GetAppAddr() string { return c.AppAddr }
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }
func (c *Config) GetAuthLoginURL() string { return c.AuthLoginURL }
func (c *Config) GetAuthTimeout() time.Duration { return c.AuthTimeout }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetSessionName() string { return c.SessionName }
func (c *Config) GetDashboardPath() string { return c.DashboardPath }
func (c *Config) GetSignupPath() string { return c.SignupPath }
func (c *Config) GetForgotPasswordPath() string { return c.ForgotPasswordPath }
func (c *Config) GetSocialProviders() []SocialProvider { return c.SocialProviders }
func (c *Config) GetLogFormat() string { return c.LogFormat }
func (c *Config) GetLogLevel() string { return c.LogLevel }
func (c *Config) GetSessionFile() string { return c.SessionFile }
func (c *Config) GetSessionDir() string { return c.SessionDir }
