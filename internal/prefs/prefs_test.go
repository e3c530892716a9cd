package prefs

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writePrefs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultTheme(t *testing.T) {
	if got := DefaultTheme(); got != "Monsoon" {
		t.Fatalf("DefaultTheme() = %q, want %q", got, "Monsoon")
	}
	if got := Default().Theme; got != DefaultTheme() {
		t.Fatalf("Default().Theme = %q, want %q", got, DefaultTheme())
	}
}

func TestLoad_DefaultLocationUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var logs bytes.Buffer
	if got := Load("", debugLogger(&logs)); got != Default() {
		t.Fatalf("Load with no file = %+v, want defaults", got)
	}
	if logs.Len() != 0 {
		t.Fatalf("missing file logged %q, want silence", logs.String())
	}

	dir := filepath.Join(home, ".config", "nowcast")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := Load("", nil).Theme; got != "Slate" {
		t.Fatalf("Theme = %q, want %q", got, "Slate")
	}
}

func TestLoad_DegradesToDefault(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantLog string
	}{
		{
			name:    "unreadable",
			path:    func(t *testing.T) string { return t.TempDir() }, // a directory
			wantLog: "prefs unreadable",
		},
		{
			name:    "malformed toml",
			path:    func(t *testing.T) string { return writePrefs(t, "theme = [Dracula\n") },
			wantLog: "prefs malformed",
		},
		{
			name:    "blank theme",
			path:    func(t *testing.T) string { return writePrefs(t, "theme = \"   \"\n") },
			wantLog: "prefs theme blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			got := Load(tt.path(t), debugLogger(&logs))
			if got.Theme != DefaultTheme() {
				t.Fatalf("Theme = %q, want %q", got.Theme, DefaultTheme())
			}
			if !strings.Contains(logs.String(), tt.wantLog) {
				t.Fatalf("log = %q, want it to mention %q", logs.String(), tt.wantLog)
			}
		})
	}
}

func TestLoad_TrimsTheme(t *testing.T) {
	path := writePrefs(t, "theme = \"  Dracula \"\n")
	if got := Load(path, nil).Theme; got != "Dracula" {
		t.Fatalf("Theme = %q, want %q", got, "Dracula")
	}
}

func TestSave_RoundTripsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	for _, theme := range []string{"Dracula", "Slate"} {
		if err := Save(path, Prefs{Theme: theme}); err != nil {
			t.Fatalf("Save(%s): %v", theme, err)
		}
		if got := Load(path, nil).Theme; got != theme {
			t.Fatalf("Theme = %q, want %q", got, theme)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("prefs dir holds %d entries, want only prefs.toml", len(entries))
	}
}

func TestSave_FailsWhenParentIsFile(t *testing.T) {
	parent := writePrefs(t, "")
	if err := Save(filepath.Join(parent, "prefs.toml"), Default()); err == nil {
		t.Fatal("Save under a file returned nil")
	}
}
