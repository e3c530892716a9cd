package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/nowcast/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "nowcast: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "nowcast",
		Short: "Terminal viewer for precipitation nowcasts over India",
		Long: "Browse the observed and forecast rain-rate frames of a day, " +
			"step through them by hand or play them as a video.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default: ~/.config/nowcast/config.toml)")
	flags.StringVar(&opts.Date, "date", "", "date to open, YYYY-MM-DD")
	flags.IntVar(&opts.Steps, "steps", 0, "total frames per day")
	flags.IntVar(&opts.ActualSteps, "actual-steps", 0, "observed frames before the forecasts")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	root.Flags().DurationVar(&opts.Interval, "interval", 0, "auto-play interval (e.g. 750ms)")
	root.Flags().StringVar(&opts.AssetURL, "asset-url", "", "image host to prefetch from")
	root.Flags().StringVar(&opts.Theme, "theme", "", "color theme")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "prefs file path (default: ~/.config/nowcast/prefs.toml)")

	root.AddCommand(newFramesCmd(&opts), newServeCmd(&opts))
	return root
}
