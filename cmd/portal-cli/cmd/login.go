package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nfrund/portal/internal/authapi"
	"github.com/nfrund/portal/internal/login"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLoginCmd(v *viper.Viper) *cobra.Command {
	var form login.Form

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and establish a session",
		Long: `Submit an email and password to the auth backend.

With --keep-logged-in the session is written to the session file so later
commands can use it. Without it the session lasts for this run only and any
previously saved session is removed.

Examples:
  portal-cli login --email ada@example.com --password secret
  portal-cli login --email ada@example.com --password secret --keep-logged-in`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			out := cmd.OutOrStdout()
			store := a.FileStore()
			nav := &printNavigator{out: out, baseURL: cfg.GetAppBaseURL()}

			form.SubmissionID = uuid.NewString()
			if err := a.Logins().Submit(cmd.Context(), login.ChannelCLI, form, store, nav); err != nil {
				if apiErr, ok := authapi.AsError(err); ok {
					return fmt.Errorf("login failed: %s", apiErr.Message)
				}
				return fmt.Errorf("login failed: %w", err)
			}

			if form.KeepLoggedIn {
				fmt.Fprintf(out, "Session saved to %s\n", store.Path())
			} else {
				fmt.Fprintln(out, "Session kept for this run only")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	cmd.Flags().BoolVar(&form.KeepLoggedIn, "keep-logged-in", false, "persist the session to the session file")
	return cmd
}

// printNavigator is the terminal's navigation: it names the page the user
// would land on in the browser.
type printNavigator struct {
	out     io.Writer
	baseURL string
}

func (n *printNavigator) Navigate(ctx context.Context, path string) error {
	_, err := fmt.Fprintf(n.out, "Logged in successfully! Continue at %s%s\n", n.baseURL, path)
	return err
}
