package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/nfrund/portal/internal/domain"
	"github.com/nfrund/portal/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := newApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			out := cmd.OutOrStdout()
			rec, err := a.FileStore().Load()
			if errors.Is(err, domain.ErrNoSession) {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Logged in since %s\n", rec.SavedAt.Format(time.RFC3339))
			exp, ok := session.TokenExpiry(session.TokenFrom(rec.Data))
			switch {
			case !ok:
				fmt.Fprintln(out, "Token expiry unknown")
			case exp.Before(time.Now()):
				fmt.Fprintf(out, "Token expired at %s\n", exp.UTC().Format(time.RFC3339))
			default:
				fmt.Fprintf(out, "Token expires at %s\n", exp.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}
