package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/nowcast/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFramesTable(t *testing.T) {
	out, err := execute(t, "frames")
	require.NoError(t, err)

	assert.Contains(t, out, "April 3, 2025 - Satellite data from 03/04/2025 21:00 UTC")
	assert.Contains(t, out, "/images/20250403/actual_2100.jpg")
	assert.Contains(t, out, "/images/20250403/forecast_2300.jpg")
	assert.Contains(t, out, "Forecast")
}

func TestFramesJSON(t *testing.T) {
	out, err := execute(t, "frames", "--json", "--steps", "13", "2025-07-21")
	require.NoError(t, err)

	var got framesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2025-07-21", got.Date)
	assert.Equal(t, "21/07/2025 21:00 UTC", got.FormattedTimestamp)
	assert.Len(t, got.Frames, 13)
	assert.Len(t, got.Images, 13)
	assert.Equal(t, "00:00", got.Frames[12].Label)
	assert.Equal(t, "Jul 21", got.Frames[12].DisplayDate)
}

func TestFramesRejectsBadDate(t *testing.T) {
	_, err := execute(t, "frames", "2025-02-30")
	assert.Error(t, err)

	out, err := execute(t, "frames", "2030-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [2025-01-01, 2025-12-31]")
	assert.Empty(t, out)

	_, err = execute(t, "frames", "--date", "1999-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}
