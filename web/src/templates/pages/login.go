package pages

import (
	"github.com/nfrund/portal/internal/view/dto/auth"
	"github.com/nfrund/portal/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	loginTitle    = "Join Us Today!"
	loginSubtitle = "Create your account for an enhanced experience at your fingertips."
	linkClass     = "font-semibold text-[#00BEA5] hover:text-[#00a08b] transition-colors"
)

// Login renders the login form. The email and keep-logged-in values are
// pre-filled from data; the password field always starts empty.
func Login(data auth.LoginData) cmp.Node {
	return components.AuthLayout(loginTitle, loginSubtitle,
		g.Form(
			g.ID("login-form"),
			g.Method("post"),
			g.Action("/auth/login"),
			g.Class("space-y-4"),
			hx.Boost("true"),
			// Disable the button while the request is pending so the form is not submitted twice.
			cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
			g.Input(g.Type("hidden"), g.Name("submission_id"), g.Value(data.SubmissionID)),

			components.FormInput(components.FormInputProps{
				Label:        "Email Address",
				Type:         "email",
				Name:         "email",
				Placeholder:  "Enter your email here",
				Value:        data.Email,
				AutoComplete: "email",
			}),
			components.FormInput(components.FormInputProps{
				Label:        "Password",
				Type:         "password",
				Name:         "password",
				Placeholder:  "••••••••••",
				AutoComplete: "current-password",
			}),

			g.Div(
				g.Class("flex items-center justify-between mb-6"),
				g.Label(
					g.Class("flex items-center space-x-2 cursor-pointer"),
					g.Input(
						g.Type("checkbox"),
						g.Name("keep_logged_in"),
						g.Value("true"),
						g.Class("w-4 h-4 rounded border-gray-300 text-[#00BEA5] focus:ring-[#00BEA5]"),
						cmp.If(data.KeepLoggedIn, g.Checked()),
					),
					g.Span(g.Class("text-sm text-gray-600 dark:text-gray-400"), cmp.Text("Keep me logged in")),
				),
				g.A(g.Href(data.ForgotPasswordURL), g.Class("text-sm "+linkClass), cmp.Text("Forgot password?")),
			),

			g.Button(
				g.Type("submit"),
				g.Class("w-full py-3.5 rounded-xl bg-gradient-to-r from-[#2186df] to-[#02ffbb] text-white font-bold text-lg shadow-lg cursor-pointer"),
				cmp.Text("Login"),
			),
		),

		components.SocialLogin(data.SocialProviders),

		g.P(
			g.Class("text-center mt-8 text-gray-600 dark:text-gray-400"),
			cmp.Text("Don’t have an account? "),
			g.A(g.Href(data.SignupURL), g.Class(linkClass), cmp.Text("Sign Up")),
		),
	)
}
