package components

import (
	"github.com/nfrund/portal/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// SocialLogin renders one link per configured external provider.
// Nothing is rendered when no provider is configured.
func SocialLogin(providers []auth.SocialLink) cmp.Node {
	if len(providers) == 0 {
		return nil
	}
	return g.Div(
		g.Class("social-login mt-6"),
		g.Div(
			g.Class("flex items-center my-6"),
			g.Span(g.Class("flex-grow border-t border-gray-200 dark:border-gray-700")),
			g.Span(g.Class("px-3 text-sm text-gray-400"), cmp.Text("or continue with")),
			g.Span(g.Class("flex-grow border-t border-gray-200 dark:border-gray-700")),
		),
		g.Div(
			g.Class("grid grid-cols-2 gap-3"),
			cmp.Map(providers, func(p auth.SocialLink) cmp.Node {
				return g.A(
					g.Href(p.URL),
					g.Class("py-3 rounded-xl border border-gray-200 text-center font-semibold text-gray-700 dark:border-gray-700 dark:text-gray-200"),
					cmp.Text(p.Name),
				)
			}),
		),
	)
}
