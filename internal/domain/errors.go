package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common login failures.
var (
	ErrNoSession          = errors.New("no active session")
	ErrSubmissionInFlight = errors.New("a login request for this form is already in progress")
	ErrTokenExpired       = errors.New("login token has already expired")
)
