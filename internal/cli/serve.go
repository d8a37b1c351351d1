package cli

import (
	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// newServeCmd creates the serve command, which runs the HTTP API.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run an HTTP server exposing the computation pipeline.

Endpoints:
  POST /v1/chart     placements and karakas for a moment
  POST /v1/dasha     a Vimshottari or Chara period tree
  POST /v1/panchang  the almanac for a day
  GET  /healthz      liveness probe

The server shuts down gracefully on SIGINT/SIGTERM.`,
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		cfg = defaultConfig()
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		ctx := cmd.Context()

		runner, err := newRunner(ctx, cfg, opts.noCache)
		if err != nil {
			return err
		}
		srv := server.New(runner, loggerFromContext(ctx))
		return srv.ListenAndServe(ctx, opts.addr)
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the ephemeris cache")

	return cmd
}
