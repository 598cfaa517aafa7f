package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/portal/internal/login/events"
	"github.com/spf13/cobra"
)

type eventDisplay struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newEventsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the login events the portal publishes",
		Long: `List the events published on the portal's event bus.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := events.Topics()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				display := make([]eventDisplay, len(topics))
				for i, topic := range topics {
					display[i] = eventDisplay{Name: topic.Name(), Description: topic.Description()}
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(struct {
					Events []eventDisplay `json:"events"`
					Count  int            `json:"count"`
				}{Events: display, Count: len(display)})
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tDESCRIPTION")
				fmt.Fprintln(w, "----\t-----------")
				for _, topic := range topics {
					fmt.Fprintf(w, "%s\t%s\n", topic.Name(), topic.Description())
				}
				return w.Flush()
			default:
				return fmt.Errorf("invalid format %q, valid formats: table, json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json)")
	return cmd
}
