package commands

import (
	"f1dash/internal/web"

	"github.com/spf13/cobra"
)

func serveCmd(app *appContext) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := app.cfg.Listen
			if listen != "" {
				addr = listen
			}
			return web.Serve(cmd.Context(), web.New(app.client, app.logger), addr, app.logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default $F1DASH_LISTEN or :8080)")
	return cmd
}
