package domain

import (
	"context"
	"encoding/json"
)

// Credentials is the request body sent to the authentication backend.
// Empty values are sent as-is.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticator exchanges credentials for an opaque session payload.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (json.RawMessage, error)
}

// SessionStore applies the payload returned by a successful login.
// What keepLoggedIn means for persistence is up to the implementation.
type SessionStore interface {
	Login(ctx context.Context, data json.RawMessage, keepLoggedIn bool) error
}

// Navigator moves the user to another location once a login completes.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}
