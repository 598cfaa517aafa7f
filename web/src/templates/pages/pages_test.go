package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/nfrund/portal/internal/view/dto/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, n.Render(&sb))
	return sb.String()
}

func TestLogin_RendersForm(t *testing.T) {
	html := render(t, Login(auth.LoginData{
		SubmissionID:      "sub-1",
		ForgotPasswordURL: "/forgot-password",
		SignupURL:         "/signup",
	}))

	assert.Contains(t, html, `action="/auth/login"`)
	assert.Contains(t, html, `type="email"`)
	assert.Contains(t, html, `name="password"`)
	assert.Contains(t, html, `name="keep_logged_in"`)
	assert.Contains(t, html, `value="sub-1"`)
	assert.Contains(t, html, `hx-boost="true"`)
	assert.Contains(t, html, `hx-disabled-elt=`)
	assert.Contains(t, html, `href="/forgot-password"`)
	assert.Contains(t, html, `href="/signup"`)
	assert.Contains(t, html, "Join Us Today!")
	assert.NotContains(t, html, "checked", "checkbox starts unchecked")
	assert.NotContains(t, html, "social-login", "no providers, no social block")
}

func TestLogin_ValueRoundTrip(t *testing.T) {
	html := render(t, Login(auth.LoginData{Email: `o'brien@example.com`, KeepLoggedIn: true}))

	assert.Contains(t, html, `value="o&#39;brien@example.com"`)
	assert.Contains(t, html, "checked")
}

func TestLogin_SocialProviders(t *testing.T) {
	html := render(t, Login(auth.LoginData{SocialProviders: []auth.SocialLink{
		{Name: "Google", URL: "https://auth.example.com/google"},
	}}))

	assert.Contains(t, html, "social-login")
	assert.Contains(t, html, `href="https://auth.example.com/google"`)
	assert.Contains(t, html, ">Google<")
}

func TestDashboard(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	html := render(t, Dashboard(auth.DashboardData{KeepLoggedIn: true, HasToken: true, ExpiresAt: exp}))

	assert.Contains(t, html, "Kept logged in on this device")
	assert.Contains(t, html, exp.Format(time.RFC1123))
	assert.Contains(t, html, `action="/auth/logout"`)

	html = render(t, Dashboard(auth.DashboardData{}))
	assert.Contains(t, html, "Ends when the browser closes")
	assert.NotContains(t, html, "expires-at")
}
