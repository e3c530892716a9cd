package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/nowcast/internal/frames"
)

// Config holds everything the viewer and the asset host need at startup.
type Config struct {
	Steps       int           `validate:"min=1,max=96"`
	ActualSteps int           `validate:"min=0,ltefield=Steps"`
	StartClock  string        `validate:"required,datetime=15:04"`
	Cadence     time.Duration `validate:"gt=0"`
	ImageRoot   string        `validate:"required,startswith=/"`

	DefaultDate  string        `validate:"required,datetime=2006-01-02"`
	MinDate      string        `validate:"required,datetime=2006-01-02"`
	MaxDate      string        `validate:"required,datetime=2006-01-02"`
	PlayInterval time.Duration `validate:"gt=0"`

	AssetURL      string  `validate:"omitempty,http_url"`
	AssetDir      string  `validate:"required"`
	ServeAddr     string  `validate:"required,hostname_port"`
	PrefetchRate  float64 `validate:"gt=0"`
	PrefetchBurst int     `validate:"min=1"`

	LogFile  string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

const (
	defaultConfigPath = "~/.config/nowcast/config.toml"
	defaultAssetDir   = "~/.local/share/nowcast"
	defaultLogFile    = "~/.local/state/nowcast/nowcast.log"

	envPrefix = "NOWCAST_"
)

// envFile is the dotenv file merged into the environment before overrides
// are read. A missing file is not an error.
var envFile = ".env"

var validate = validator.New()

var envNames = []string{
	"STEPS", "ACTUAL_STEPS", "PLAY_INTERVAL", "DEFAULT_DATE",
	"ASSET_URL", "ASSET_DIR", "SERVE_ADDR", "PREFETCH_RATE", "PREFETCH_BURST",
	"LOG_FILE", "LOG_LEVEL",
}

// EnvVars returns the names of the environment variables Load honours.
func EnvVars() []string {
	out := make([]string, len(envNames))
	for i, name := range envNames {
		out[i] = envPrefix + name
	}
	return out
}

// Default returns the built-in configuration.
func Default() Config {
	fc := frames.DefaultConfig()
	return Config{
		Steps:         fc.Steps,
		ActualSteps:   fc.ActualSteps,
		StartClock:    frames.FormatClock(fc.Start),
		Cadence:       fc.Cadence,
		ImageRoot:     fc.ImageRoot,
		DefaultDate:   "2025-04-03",
		MinDate:       "2025-01-01",
		MaxDate:       "2025-12-31",
		PlayInterval:  750 * time.Millisecond,
		AssetDir:      mustExpand(defaultAssetDir),
		ServeAddr:     "127.0.0.1:8787",
		PrefetchRate:  8,
		PrefetchBurst: 2,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      "info",
	}
}

// Load reads the TOML config at path (the default location when empty),
// applies NOWCAST_* environment overrides and validates the result. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.mergeFile(resolved); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rawConfig struct {
	Frames struct {
		Steps       *int   `toml:"steps"`
		ActualSteps *int   `toml:"actual_steps"`
		Start       string `toml:"start"`
		Cadence     string `toml:"cadence"`
		ImageRoot   string `toml:"image_root"`
	} `toml:"frames"`
	Viewer struct {
		DefaultDate  string `toml:"default_date"`
		MinDate      string `toml:"min_date"`
		MaxDate      string `toml:"max_date"`
		PlayInterval string `toml:"play_interval"`
	} `toml:"viewer"`
	Assets struct {
		URL           string   `toml:"url"`
		Dir           string   `toml:"dir"`
		ServeAddr     string   `toml:"serve_addr"`
		PrefetchRate  *float64 `toml:"prefetch_rate"`
		PrefetchBurst *int     `toml:"prefetch_burst"`
	} `toml:"assets"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if raw.Frames.Steps != nil {
		c.Steps = *raw.Frames.Steps
	}
	if raw.Frames.ActualSteps != nil {
		c.ActualSteps = *raw.Frames.ActualSteps
	}
	setString(&c.StartClock, raw.Frames.Start)
	setString(&c.ImageRoot, raw.Frames.ImageRoot)
	if err := setDuration(&c.Cadence, raw.Frames.Cadence, "frames.cadence"); err != nil {
		return err
	}

	setString(&c.DefaultDate, raw.Viewer.DefaultDate)
	setString(&c.MinDate, raw.Viewer.MinDate)
	setString(&c.MaxDate, raw.Viewer.MaxDate)
	if err := setDuration(&c.PlayInterval, raw.Viewer.PlayInterval, "viewer.play_interval"); err != nil {
		return err
	}

	setString(&c.AssetURL, raw.Assets.URL)
	setString(&c.AssetDir, raw.Assets.Dir)
	setString(&c.ServeAddr, raw.Assets.ServeAddr)
	if raw.Assets.PrefetchRate != nil {
		c.PrefetchRate = *raw.Assets.PrefetchRate
	}
	if raw.Assets.PrefetchBurst != nil {
		c.PrefetchBurst = *raw.Assets.PrefetchBurst
	}

	setString(&c.LogFile, raw.Log.File)
	setString(&c.LogLevel, raw.Log.Level)
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	for name, dst := range map[string]*int{
		"STEPS":          &c.Steps,
		"ACTUAL_STEPS":   &c.ActualSteps,
		"PREFETCH_BURST": &c.PrefetchBurst,
	} {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}

	if v, ok := get("PLAY_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sPLAY_INTERVAL: %w", envPrefix, err)
		}
		c.PlayInterval = d
	}
	if v, ok := get("PREFETCH_RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sPREFETCH_RATE: %w", envPrefix, err)
		}
		c.PrefetchRate = f
	}

	for name, dst := range map[string]*string{
		"DEFAULT_DATE": &c.DefaultDate,
		"ASSET_URL":    &c.AssetURL,
		"ASSET_DIR":    &c.AssetDir,
		"SERVE_ADDR":   &c.ServeAddr,
		"LOG_FILE":     &c.LogFile,
		"LOG_LEVEL":    &c.LogLevel,
	} {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.AssetURL = strings.TrimRight(strings.TrimSpace(c.AssetURL), "/")
	c.AssetDir = mustExpand(c.AssetDir)
	c.LogFile = mustExpand(c.LogFile)
}

// Validate checks field constraints and the date window.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	minDate, _ := time.Parse(frames.DateLayout, c.MinDate)
	maxDate, _ := time.Parse(frames.DateLayout, c.MaxDate)
	def, _ := time.Parse(frames.DateLayout, c.DefaultDate)
	if maxDate.Before(minDate) {
		return fmt.Errorf("invalid config: max date %s is before min date %s", c.MaxDate, c.MinDate)
	}
	if def.Before(minDate) || def.After(maxDate) {
		return fmt.Errorf("invalid config: default date %s outside [%s, %s]", c.DefaultDate, c.MinDate, c.MaxDate)
	}

	fc, err := c.FramesConfig()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := fc.Validate(); err != nil {
		return fmt.Errorf("invalid config: frames: %w", err)
	}
	return nil
}

// FramesConfig returns the frame builder settings.
func (c Config) FramesConfig() (frames.Config, error) {
	start, err := frames.ParseClock(c.StartClock)
	if err != nil {
		return frames.Config{}, fmt.Errorf("parse start clock: %w", err)
	}
	return frames.Config{
		Steps:       c.Steps,
		ActualSteps: c.ActualSteps,
		Start:       start,
		Cadence:     c.Cadence,
		ImageRoot:   c.ImageRoot,
	}, nil
}

// DateBounds returns the inclusive range the date picker accepts.
func (c Config) DateBounds() (time.Time, time.Time) {
	minDate, _ := time.Parse(frames.DateLayout, c.MinDate)
	maxDate, _ := time.Parse(frames.DateLayout, c.MaxDate)
	return minDate, maxDate
}

// CheckDate reports whether date is a YYYY-MM-DD day inside the window.
func (c Config) CheckDate(date string) error {
	t, err := time.Parse(frames.DateLayout, date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", date, err)
	}
	minDate, maxDate := c.DateBounds()
	if t.Before(minDate) || t.After(maxDate) {
		return fmt.Errorf("date %s outside [%s, %s]", date, c.MinDate, c.MaxDate)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, value, key string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
