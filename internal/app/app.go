package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/nowcast/internal/assets"
	"github.com/five82/nowcast/internal/assetserver"
	"github.com/five82/nowcast/internal/config"
	"github.com/five82/nowcast/internal/frames"
	"github.com/five82/nowcast/internal/logging"
	"github.com/five82/nowcast/internal/playback"
	"github.com/five82/nowcast/internal/prefs"
	"github.com/five82/nowcast/internal/state"
	"github.com/five82/nowcast/internal/ui"
)

// sequenceCacheSize bounds how many dates keep a built sequence around.
const sequenceCacheSize = 32

// Options configure the nowcast application. Zero values keep whatever
// the config file and environment resolved.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/nowcast/prefs.toml

	Date        string
	Steps       int
	ActualSteps int
	Interval    time.Duration
	AssetURL    string
	AssetDir    string
	ServeAddr   string
	LogLevel    string
	Theme       string
}

// LoadConfig loads the config file and environment, then applies the
// command-line overrides in opts and validates the result.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.Date != "" {
		cfg.DefaultDate = opts.Date
	}
	if opts.Steps > 0 {
		cfg.Steps = opts.Steps
		if cfg.ActualSteps > cfg.Steps {
			cfg.ActualSteps = cfg.Steps
		}
	}
	if opts.ActualSteps > 0 {
		cfg.ActualSteps = opts.ActualSteps
	}
	if opts.Interval > 0 {
		cfg.PlayInterval = opts.Interval
	}
	if opts.AssetURL != "" {
		cfg.AssetURL = strings.TrimRight(opts.AssetURL, "/")
	}
	if opts.AssetDir != "" {
		cfg.AssetDir = opts.AssetDir
	}
	if opts.ServeAddr != "" {
		cfg.ServeAddr = opts.ServeAddr
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewSource returns the cached frame builder described by cfg.
func NewSource(cfg config.Config) (*frames.Cache, error) {
	fc, err := cfg.FramesConfig()
	if err != nil {
		return nil, err
	}
	builder, err := frames.NewBuilder(fc)
	if err != nil {
		return nil, fmt.Errorf("init frame builder: %w", err)
	}
	return frames.NewCache(builder, sequenceCacheSize), nil
}

// Sequence builds the frame sequence for date, or for the configured
// default date when date is empty.
func Sequence(cfg config.Config, date string) (frames.Sequence, error) {
	source, err := NewSource(cfg)
	if err != nil {
		return frames.Sequence{}, err
	}
	if date == "" {
		date = cfg.DefaultDate
	}
	return source.Build(date)
}

// NewController builds the session for cfg's default date and attaches an
// auto-play driver on clock. A nil clock uses the real one.
func NewController(cfg config.Config, clock clockwork.Clock, logger *slog.Logger) (*state.Controller, error) {
	source, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	session, err := state.NewSession(source, cfg.DefaultDate)
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	return state.NewController(session, playback.NewDriver(clock), cfg.PlayInterval, logger), nil
}

// NewPrefetcher returns the asset client and prefetcher for cfg, or nils
// when no asset host is configured.
func NewPrefetcher(cfg config.Config, logger *slog.Logger) (*assets.Client, *assets.Prefetcher, error) {
	if cfg.AssetURL == "" {
		return nil, nil, nil
	}
	client, err := assets.NewClient(cfg.AssetURL)
	if err != nil {
		return nil, nil, fmt.Errorf("init asset client: %w", err)
	}
	prefetcher := assets.NewPrefetcher(client, assets.PrefetchOptions{
		Rate:  cfg.PrefetchRate,
		Burst: cfg.PrefetchBurst,
	}, logger)
	return client, prefetcher, nil
}

// Run boots the viewer until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	uiOpts, err := NewUIOptions(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	logger.Info("viewer starting",
		"date", cfg.DefaultDate,
		"steps", cfg.Steps,
		"actual_steps", cfg.ActualSteps,
		"interval", cfg.PlayInterval,
		"asset_url", cfg.AssetURL,
		"theme", uiOpts.ThemeName,
	)
	return ui.Run(uiOpts)
}

// NewUIOptions assembles everything the viewer needs from a validated
// config: the controller on the real clock, the optional asset wiring,
// the date window and the theme (flag first, then stored prefs).
func NewUIOptions(ctx context.Context, cfg config.Config, opts Options, logger *slog.Logger) (ui.Options, error) {
	theme := opts.Theme
	if theme == "" {
		theme = prefs.Load(opts.PrefsPath, logger).Theme
	}

	ctrl, err := NewController(cfg, nil, logger)
	if err != nil {
		return ui.Options{}, err
	}
	client, prefetcher, err := NewPrefetcher(cfg, logger)
	if err != nil {
		ctrl.Close()
		return ui.Options{}, err
	}

	minDate, maxDate := cfg.DateBounds()
	return ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Assets:     client,
		Prefetcher: prefetcher,
		MinDate:    minDate,
		MaxDate:    maxDate,
		ThemeName:  theme,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
	}, nil
}

// Serve runs the static asset host until the context is cancelled. Logs go
// to w.
func Serve(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := logging.New(w, cfg.LogLevel)

	srvOpts := assetserver.Options{
		Addr:   cfg.ServeAddr,
		Root:   cfg.AssetDir,
		Prefix: cfg.ImageRoot,
		Logger: logger,
	}
	if logging.ParseLevel(cfg.LogLevel) <= slog.LevelDebug {
		srvOpts.AccessLog = w
	}
	return assetserver.New(srvOpts).Run(ctx)
}
