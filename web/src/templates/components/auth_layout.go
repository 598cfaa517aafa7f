package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// AuthLayout is the centred card used by the authentication pages.
func AuthLayout(title, subtitle string, children ...cmp.Node) cmp.Node {
	return g.Main(
		g.Class("flex items-center justify-center px-4 py-12"),
		g.Div(
			g.Class("w-full max-w-md bg-white dark:bg-[#111827] rounded-2xl shadow-xl p-8"),
			g.H1(g.Class("text-3xl font-bold text-gray-900 dark:text-white mb-2"), cmp.Text(title)),
			g.P(g.Class("text-gray-500 dark:text-gray-400 mb-8"), cmp.Text(subtitle)),
			cmp.Group(children),
		),
	)
}
