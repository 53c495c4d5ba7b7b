package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"nexus/internal/app"
	"nexus/internal/config"
	"nexus/internal/logging"
	sessionsvc "nexus/internal/services/session"
)

// Command annotations.
const (
	annotationGuard = "guard"
	annotationRoute = "route"

	guardProtected  = "protected"
	guardPublicOnly = "public"
)

// errRedirected stops a command whose guard redirected. The navigator has
// already printed the hint.
var errRedirected = errors.New("redirected")

var (
	appCtx   *app.Wire
	settings *config.Config
	logger   *slog.Logger
	out      *printer
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return execute(context.Background(), newRootCmd())
}

// execute runs root, reports a failure on its stderr and releases the
// dependency graph whether or not the command succeeded.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if appCtx != nil {
		if cerr := appCtx.Close(); cerr != nil {
			logging.For(logger, logging.ComponentCLI).Warn("close", "error", cerr)
		}
		appCtx = nil
	}
	if err != nil && !errors.Is(err, errRedirected) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", describe(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nexus",
		Short:         "Command-line client for the Nexus Finance API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Get()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			settings = cfg

			logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			out = &printer{w: cmd.OutOrStdout(), format: cfg.Output}

			nav := newNavigator(cmd.ErrOrStderr(), cmd.Annotations[annotationRoute])
			wcfg := app.FromSettings(cfg)
			wcfg.Logger = logger
			wcfg.Navigator = nav
			appCtx, err = app.NewWire(wcfg)
			if err != nil {
				return err
			}

			state := appCtx.Session.Restore(cmd.Context())
			logging.For(logger, logging.ComponentCLI).Debug("session restored",
				"command", cmd.CommandPath(), "status", state.Status)

			var guard sessionsvc.Guard
			switch cmd.Annotations[annotationGuard] {
			case guardProtected:
				guard = sessionsvc.Protected
			case guardPublicOnly:
				guard = sessionsvc.PublicOnly
			default:
				return nil
			}
			switch d := guard(state); d.Outcome {
			case sessionsvc.Redirect:
				nav.Navigate(d.Route)
				return errRedirected
			case sessionsvc.Loading:
				return errors.New("session is still initializing")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-url", "", "backend base URL (default "+config.DefaultAPIURL+")")
	pf.String("home", "", "config dir (default ~/.nexus)")
	pf.String("store", "", "credential store: file or sqlite (default file)")
	pf.StringP("passphrase", "p", "", "passphrase to seal the credential file")
	pf.Duration("timeout", 0, "per-request timeout, e.g. 15s (default none)")
	pf.String("log-level", "", "debug, info, warn or error (default warn)")
	pf.String("log-format", "", "text or json (default text)")
	pf.StringP("output", "o", "", "table, json or yaml (default table)")

	root.AddCommand(
		loginCmd(), registerCmd(), logoutCmd(), whoamiCmd(),
		dashboardCmd(),
		accountsCmd(), transactionsCmd(), budgetsCmd(), goalsCmd(), investmentsCmd(),
		analyticsCmd(), notificationsCmd(), recurringCmd(),
		predictCmd(), modelInfoCmd(),
	)
	return root
}

// protected marks cmd as requiring a signed-in user.
func protected(cmd *cobra.Command) *cobra.Command {
	return annotate(cmd, annotationGuard, guardProtected)
}

// publicOnly marks cmd as reserved for signed-out users, served at route.
func publicOnly(cmd *cobra.Command, route string) *cobra.Command {
	annotate(cmd, annotationGuard, guardPublicOnly)
	return annotate(cmd, annotationRoute, route)
}

func annotate(cmd *cobra.Command, key, value string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[key] = value
	for _, sub := range cmd.Commands() {
		annotate(sub, key, value)
	}
	return cmd
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
