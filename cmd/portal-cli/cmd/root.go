package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/portal/internal/app"
	"github.com/nfrund/portal/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the portal-cli command tree. Flags are bound to the same
// configuration keys the server reads from the environment.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "portal-cli",
		Short: "Portal command-line client",
		Long: `portal-cli logs in against the Portal auth backend from a terminal.

Available commands:
  login     Submit credentials and establish a session
  logout    Remove the persisted session
  status    Show the persisted session
  events    List the login events the portal publishes

Use "portal-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("auth-url", "", "login endpoint of the auth backend (env AUTH_LOGIN_URL)")
	flags.Duration("timeout", 0, "timeout for the login request (env AUTH_TIMEOUT)")
	flags.String("session-file", "", "where a kept session is stored (env SESSION_FILE)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	_ = v.BindPFlag(config.KeyAuthLoginURL, flags.Lookup("auth-url"))
	_ = v.BindPFlag(config.KeyAuthTimeout, flags.Lookup("timeout"))
	_ = v.BindPFlag(config.KeySessionFile, flags.Lookup("session-file"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newLoginCmd(v),
		newLogoutCmd(v),
		newStatusCmd(v),
		newEventsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newApp loads configuration after flags are parsed and builds the container.
// Logs go to stderr so command output stays clean.
func newApp(cmd *cobra.Command, v *viper.Viper) (*app.App, *config.Config, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	return app.New(cfg, app.WithLogOutput(cmd.ErrOrStderr())), cfg, nil
}
