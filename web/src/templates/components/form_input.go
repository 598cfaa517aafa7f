package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const inputClass = "w-full px-4 py-3 rounded-xl bg-gray-50 border border-gray-200 text-gray-900 placeholder-gray-400 " +
	"focus:outline-none focus:ring-2 focus:ring-[#00BEA5] focus:border-transparent transition-all " +
	"dark:bg-[#0f172a] dark:border-gray-700 dark:text-white dark:placeholder-gray-500"

// FormInputProps configures a labelled text input.
type FormInputProps struct {
	Label        string
	Type         string
	Name         string
	Placeholder  string
	Value        string
	AutoComplete string
}

// FormInput renders a label and input pair.
func FormInput(p FormInputProps) cmp.Node {
	return g.Div(
		g.Class("mb-4"),
		g.Label(
			g.For(p.Name),
			g.Class("block text-sm font-medium text-gray-700 dark:text-gray-300 mb-2"),
			cmp.Text(p.Label),
		),
		g.Input(
			g.ID(p.Name),
			g.Name(p.Name),
			g.Type(p.Type),
			g.Class(inputClass),
			g.Placeholder(p.Placeholder),
			g.Value(p.Value),
			cmp.If(p.AutoComplete != "", g.AutoComplete(p.AutoComplete)),
		),
	)
}
