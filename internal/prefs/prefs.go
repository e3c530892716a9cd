// Package prefs persists the viewer's theme choice in
// ~/.config/nowcast/prefs.toml. The selected date and frame belong to the
// viewing session and are never stored.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPath  = "~/.config/nowcast/prefs.toml"
	defaultTheme = "Monsoon"
)

// DefaultTheme is the theme used when none is stored.
func DefaultTheme() string {
	return defaultTheme
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPath
}

// Default returns the preferences of a fresh install.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads the preferences at path, or the default location when path is
// empty. It never fails: a missing, unreadable or malformed file yields
// Default, and anything other than a missing file is logged at debug level.
func Load(path string, logger *slog.Logger) Prefs {
	if logger == nil {
		logger = slog.Default()
	}

	resolved, err := resolvePath(path)
	if err != nil {
		logger.Debug("prefs path unresolved, using defaults", "path", path, "error", err)
		return Default()
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Default()
	case err != nil:
		logger.Debug("prefs unreadable, using defaults", "path", resolved, "error", err)
		return Default()
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		logger.Debug("prefs malformed, using defaults", "path", resolved, "error", err)
		return Default()
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		logger.Debug("prefs theme blank, using default", "path", resolved, "theme", defaultTheme)
		p.Theme = defaultTheme
	}
	return p
}

// Save replaces the preferences file at path, creating parent directories.
// The new content is written to a sibling temp file and renamed into place.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.Theme = strings.TrimSpace(p.Theme)
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create prefs temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
