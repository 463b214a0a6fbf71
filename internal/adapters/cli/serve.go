package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/server"
)

var (
	serveHost string
	servePort int
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planner HTTP API and live session server",
		Long: `Run the planner over HTTP.

REST endpoints live under /api; /ws opens a live planning session where
each action is applied in order and answered with the recomputed summary.
Send SIGHUP to reload the module catalog; live sessions are told when a
reload succeeds.

Examples:
  habplanner serve
  habplanner serve --port 9090 --catalog data/modules.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if serveHost != "" {
				app.Config.Server.Host = serveHost
			}
			if servePort != 0 {
				app.Config.Server.Port = servePort
			}

			srv := server.NewServer(app)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reload := make(chan os.Signal, 1)
			signal.Notify(reload, syscall.SIGHUP)
			defer signal.Stop(reload)
			go srv.WatchReloads(ctx, reload)

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Listening on %s:%d (Ctrl+C to stop)\n",
				app.Config.Server.Host, app.Config.Server.Port)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides server.port)")

	return cmd
}
