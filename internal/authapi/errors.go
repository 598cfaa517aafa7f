package authapi

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the backend rejects a login without saying why.
const FallbackMessage = "Something went wrong"

// Kind tells the two failure modes of a login attempt apart.
type Kind int

const (
	// KindNetwork means no usable response arrived: the request failed in transit
	// or the success body could not be decoded.
	KindNetwork Kind = iota + 1
	// KindHTTP means the backend answered with a non-2xx status.
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Error is the tagged result of a failed login. Callers branch on Kind with
// errors.As instead of inspecting the message text.
type Error struct {
	Kind Kind
	// Status is the HTTP status code. Zero for KindNetwork.
	Status int
	// Message is the user-facing text.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("auth backend returned status %d: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}
