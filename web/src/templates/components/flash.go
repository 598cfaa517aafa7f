package components

import (
	"github.com/nfrund/portal/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Flashes renders success and error messages as inline banners.
// Errors use role="alert" so assistive technology announces them without a modal.
func Flashes(flashes view.FlashData) cmp.Node {
	if len(flashes.Success) == 0 && len(flashes.Error) == 0 {
		return nil
	}
	return g.Div(
		g.ID("flash-messages"),
		g.Class("max-w-md mx-auto mt-6 space-y-2"),
		cmp.Map(flashes.Error, func(msg string) cmp.Node {
			return g.Div(
				g.Role("alert"),
				g.Class("flash flash-error px-4 py-3 rounded-xl bg-red-50 text-red-700 border border-red-200"),
				cmp.Text(msg),
			)
		}),
		cmp.Map(flashes.Success, func(msg string) cmp.Node {
			return g.Div(
				g.Role("status"),
				g.Class("flash flash-success px-4 py-3 rounded-xl bg-green-50 text-green-700 border border-green-200"),
				cmp.Text(msg),
			)
		}),
	)
}
