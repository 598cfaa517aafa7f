package auth

import "time"

// SocialLink is a single external sign-in option.
type SocialLink struct {
	Name string
	URL  string
}

// LoginData is a View Model (DTO) used specifically for the login template.
// Email and KeepLoggedIn carry the values of a previous failed submission.
type LoginData struct {
	Email             string
	KeepLoggedIn      bool
	SubmissionID      string
	ForgotPasswordURL string
	SignupURL         string
	SocialProviders   []SocialLink
}

// DashboardData is the view model for the dashboard page.
type DashboardData struct {
	KeepLoggedIn bool
	LoggedInAt   time.Time
	ExpiresAt    time.Time
	HasToken     bool
}
