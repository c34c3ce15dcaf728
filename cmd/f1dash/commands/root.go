package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"f1dash/internal/api"
	"f1dash/internal/config"
	"f1dash/internal/telemetry"
	"f1dash/internal/ui"

	"github.com/spf13/cobra"
)

// appContext is what the root command wires up for its subcommands.
type appContext struct {
	cfg    config.Config
	logger *slog.Logger
	client *api.Client

	cleanup []func(context.Context) error
}

func (a *appContext) close(ctx context.Context) error {
	var firstErr error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.cleanup = nil
	return firstErr
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root, app := newRootCmd()
	return execute(ctx, root, app)
}

// execute runs root and then releases what PersistentPreRunE opened, even
// when the command failed.
func execute(ctx context.Context, root *cobra.Command, app *appContext) error {
	err := root.ExecuteContext(ctx)
	if cerr := app.close(context.Background()); err == nil {
		err = cerr
	}
	return err
}

// newRootCmd builds the f1dash command tree and the context it wires up.
func newRootCmd() (*cobra.Command, *appContext) {
	var (
		apiURL   string
		envFile  string
		logLevel string
		app      = &appContext{}
	)

	root := &cobra.Command{
		Use:          "f1dash",
		Short:        "Admin dashboard for the F1 statistics API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIBaseURL = apiURL
			}
			if logLevel != "" {
				if cfg.LogLevel, err = config.ParseLevel(logLevel); err != nil {
					return err
				}
			}
			app.cfg = cfg

			var logOut io.Writer = cmd.ErrOrStderr()
			if isTUI(cmd) {
				f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				app.cleanup = append(app.cleanup, func(context.Context) error { return f.Close() })
				logOut = f
			}
			app.logger = cfg.NewLogger(logOut)
			slog.SetDefault(app.logger)

			shutdown, err := telemetry.Setup(cmd.Context(), cfg.OTLPEndpoint, cfg.ServiceName)
			if err != nil {
				app.logger.Warn("tracing disabled", "err", err)
			} else {
				app.cleanup = append(app.cleanup, shutdown)
			}

			app.client = api.New(cfg.APIBaseURL,
				api.WithTimeout(cfg.HTTPTimeout),
				api.WithLogger(app.logger),
			)
			app.logger.Debug("configured", "api", app.client.BaseURL(), "command", cmd.Name())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), app.client, app.logger)
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "", "F1 API base URL (default $"+config.EnvAPIBaseURL+" or "+config.DefaultAPIBaseURL+")")
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $"+config.EnvLogLevel+" or info)")

	root.AddCommand(
		tuiCmd(app),
		serveCmd(app),
		resourceCmd(app, "drivers"),
		resourceCmd(app, "constructors"),
		resourceCmd(app, "standings"),
		chartCmd(app),
	)
	return root, app
}

// isTUI reports whether cmd takes over the terminal.
func isTUI(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

func tuiCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), app.client, app.logger)
		},
	}
}
