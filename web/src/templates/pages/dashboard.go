package pages

import (
	"time"

	"github.com/nfrund/portal/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard is the landing page after a successful login.
func Dashboard(data auth.DashboardData) cmp.Node {
	return g.Main(
		g.Class("max-w-2xl mx-auto px-4 py-12"),
		g.Div(
			g.Class("bg-white dark:bg-[#111827] rounded-2xl shadow-xl p-8"),
			g.H1(g.Class("text-3xl font-bold text-gray-900 dark:text-white mb-6"), cmp.Text("Dashboard")),
			g.Dl(
				g.Class("grid grid-cols-2 gap-y-3 text-gray-700 dark:text-gray-300"),
				g.Dt(cmp.Text("Logged in")),
				g.Dd(g.ID("logged-in-at"), cmp.Text(formatTime(data.LoggedInAt))),
				g.Dt(cmp.Text("Session")),
				g.Dd(g.ID("session-kind"), cmp.Text(sessionKind(data.KeepLoggedIn))),
				cmp.If(data.HasToken && !data.ExpiresAt.IsZero(), cmp.Group{
					g.Dt(cmp.Text("Token expires")),
					g.Dd(g.ID("expires-at"), cmp.Text(formatTime(data.ExpiresAt))),
				}),
			),
			g.Form(
				g.Method("post"),
				g.Action("/auth/logout"),
				g.Class("mt-8"),
				g.Button(
					g.Type("submit"),
					g.Class("px-6 py-3 rounded-xl border border-gray-300 font-semibold cursor-pointer"),
					cmp.Text("Log out"),
				),
			),
		),
	)
}

func sessionKind(keep bool) string {
	if keep {
		return "Kept logged in on this device"
	}
	return "Ends when the browser closes"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(time.RFC1123)
}
