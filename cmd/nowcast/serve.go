package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/nowcast/internal/app"
)

func newServeCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve nowcast images over HTTP",
		Long: "Host the image directory under the configured image root, " +
			"with /healthz and Prometheus /metrics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), *opts, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&opts.ServeAddr, "addr", "", "listen address (default: 127.0.0.1:8787)")
	cmd.Flags().StringVar(&opts.AssetDir, "dir", "", "image directory (default: ~/.local/share/nowcast)")
	return cmd
}
