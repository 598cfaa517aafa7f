package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/portal/internal/view"
	"github.com/nfrund/portal/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the HTML document shell and renders any flash messages above it.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(title, flashes, view.AdaptTemplToGomponent(content)).Render(w)
	})
}

func document(title string, flashes view.FlashData, body cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			),
			g.Body(
				g.Class("min-h-screen bg-gray-100 dark:bg-[#0b1120]"),
				components.Flashes(flashes),
				body,
			),
		),
	)
}
