package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/nowcast/internal/frames"
	"github.com/five82/nowcast/internal/playback"
	"github.com/five82/nowcast/internal/prefs"
	"github.com/five82/nowcast/internal/state"
)

const testInterval = 750 * time.Millisecond

type harness struct {
	model Model
	ctrl  *state.Controller
	clock *clockwork.FakeClock
	prefs string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b, err := frames.NewBuilder(frames.DefaultConfig())
	require.NoError(t, err)
	session, err := state.NewSession(frames.NewCache(b, 4), "")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	ctrl := state.NewController(session, playback.NewDriver(clock), testInterval, nil)
	t.Cleanup(ctrl.Close)

	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	h := &harness{ctrl: ctrl, clock: clock, prefs: prefsPath}
	h.model = New(Options{Controller: ctrl, PrefsPath: prefsPath})
	h.send(t, tea.WindowSizeMsg{Width: 220, Height: 60})
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		h.send(t, keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) awaitTick(t *testing.T) playback.Tick {
	t.Helper()
	select {
	case tick := <-h.ctrl.Ticks():
		return tick
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
		return playback.Tick{}
	}
}

func TestModel_LoadingUntilSized(t *testing.T) {
	b, err := frames.NewBuilder(frames.DefaultConfig())
	require.NoError(t, err)
	session, err := state.NewSession(frames.NewCache(b, 0), "")
	require.NoError(t, err)
	ctrl := state.NewController(session, playback.NewDriver(clockwork.NewFakeClock()), 0, nil)
	t.Cleanup(ctrl.Close)

	m := New(Options{Controller: ctrl, PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ArrowKeysStep(t *testing.T) {
	h := newHarness(t)

	h.press(t, "left")
	assert.Equal(t, 0, h.model.snap.Index, "prev is a no-op on the first frame")

	h.press(t, "right", "right")
	assert.Equal(t, 2, h.model.snap.Index)

	h.press(t, "left")
	assert.Equal(t, 1, h.model.snap.Index)

	h.press(t, "G")
	assert.Equal(t, 8, h.model.snap.Index)
	h.press(t, "right")
	assert.Equal(t, 8, h.model.snap.Index, "next is a no-op on the last frame")

	h.press(t, "g")
	assert.Equal(t, 0, h.model.snap.Index)
}

func TestModel_FullscreenKeys(t *testing.T) {
	h := newHarness(t)

	for _, k := range []string{"f", "F", "esc"} {
		h.press(t, k)
		assert.True(t, h.model.snap.Fullscreen, "%s enters fullscreen", k)
		h.press(t, k)
		assert.False(t, h.model.snap.Fullscreen, "%s leaves fullscreen", k)
	}
}

func TestModel_PlayRequiresVideoMode(t *testing.T) {
	h := newHarness(t)

	h.press(t, " ")
	assert.False(t, h.model.snap.Playing)
	assert.Equal(t, "Switch to video mode (v) to play", h.model.notice)

	h.press(t, "v", " ")
	assert.Equal(t, state.ModeVideo, h.model.snap.Mode)
	assert.True(t, h.model.snap.Playing)
	assert.Empty(t, h.model.notice)
}

func TestModel_PlayTickAdvances(t *testing.T) {
	h := newHarness(t)
	h.press(t, "v", " ")

	h.clock.Advance(testInterval)
	tick := h.awaitTick(t)
	cmd := h.send(t, playTickMsg(tick))
	assert.Equal(t, 1, h.model.snap.Index)
	assert.NotNil(t, cmd, "waits for the next tick")

	// Pausing invalidates ticks from the old generation.
	h.press(t, " ")
	assert.False(t, h.model.snap.Playing)
	h.send(t, playTickMsg(tick))
	assert.Equal(t, 1, h.model.snap.Index)
}

func TestModel_LeavingVideoStopsPlayback(t *testing.T) {
	h := newHarness(t)
	h.press(t, "v", " ")
	require.True(t, h.model.snap.Playing)

	h.press(t, "v")
	assert.Equal(t, state.ModeStandard, h.model.snap.Mode)
	assert.False(t, h.model.snap.Playing)
}

func TestModel_DatePicker(t *testing.T) {
	h := newHarness(t)
	h.press(t, "right", "right")

	h.press(t, "d")
	require.True(t, h.model.picker.active)
	assert.Equal(t, "2025-04-03", h.model.picker.value())
	assert.Contains(t, h.model.View(), "Select Date")

	h.model.picker.input.SetValue("2025-13-01")
	h.press(t, "enter")
	assert.True(t, h.model.picker.active)
	assert.Equal(t, "enter a date as YYYY-MM-DD", h.model.picker.err)

	h.model.picker.input.SetValue("2026-01-01")
	h.press(t, "enter")
	assert.True(t, h.model.picker.active)
	assert.Equal(t, "dates run from 2025-01-01 to 2025-12-31", h.model.picker.err)

	h.model.picker.input.SetValue("2025-07-21")
	h.press(t, "enter")
	assert.False(t, h.model.picker.active)
	assert.Equal(t, "2025-07-21", h.model.snap.Date)
	assert.Equal(t, 0, h.model.snap.Index, "date change resets the frame")
	assert.Equal(t, "Jul 21", h.model.snap.Current().DisplayDate)
}

func TestModel_DatePickerCancel(t *testing.T) {
	h := newHarness(t)
	h.press(t, "d")
	h.model.picker.input.SetValue("2025-07-21")

	h.press(t, "esc")
	assert.False(t, h.model.picker.active)
	assert.Equal(t, "2025-04-03", h.model.snap.Date)
	assert.False(t, h.model.snap.Fullscreen, "esc in the picker does not toggle fullscreen")
}

func TestModel_DayShiftStaysInWindow(t *testing.T) {
	h := newHarness(t)

	h.press(t, "]")
	assert.Equal(t, "2025-04-04", h.model.snap.Date)
	h.press(t, "[", "[")
	assert.Equal(t, "2025-04-02", h.model.snap.Date)

	require.NoError(t, h.ctrl.ChangeDate("2025-12-31"))
	h.model.refresh()
	h.press(t, "]")
	assert.Equal(t, "2025-12-31", h.model.snap.Date)
	assert.Equal(t, "dates run from 2025-01-01 to 2025-12-31", h.model.notice)
}

func TestModel_CycleThemePersists(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "Monsoon", h.model.theme.Name)

	h.press(t, "T")
	assert.Equal(t, "Dracula", h.model.theme.Name)

	assert.Equal(t, "Dracula", prefs.Load(h.prefs, nil).Theme)
}

func TestNew_ThemeSelection(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		stored string
		want   string
	}{
		{"Slate", "Slate"},
		{"", "Monsoon"},
		{"Kanagawa", "Monsoon"},
	}
	for _, tt := range tests {
		m := New(Options{Controller: h.ctrl, ThemeName: tt.stored, PrefsPath: h.prefs})
		assert.Equal(t, tt.want, m.ThemeName(), "stored %q", tt.stored)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t)
	h.press(t, "?")
	require.True(t, h.model.showHelp)
	assert.Contains(t, h.model.View(), "Playback")

	h.press(t, "right")
	assert.False(t, h.model.showHelp)
	assert.Equal(t, 0, h.model.snap.Index, "the closing key is swallowed")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(t, keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_QuitReleasesTickWaiter(t *testing.T) {
	h := newHarness(t)
	wait := waitForTickCmd(h.model.ctx, h.ctrl.Ticks())

	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()

	h.press(t, "q")
	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("tick waiter still blocked after quit")
	}
}

func TestModel_View(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	assert.Contains(t, view, appTitle)
	assert.Contains(t, view, "03/04/2025 21:00 UTC")
	assert.Contains(t, view, "21:00 - Actual Observation")
	assert.Contains(t, view, "Standard View")

	h.press(t, "G")
	view = h.model.View()
	assert.Contains(t, view, "Forecast Prediction")
	assert.Contains(t, view, "Nowcast")

	h.press(t, "v")
	view = h.model.View()
	assert.Contains(t, view, "Video Timeline")
	assert.Contains(t, view, "Frame 9 of 9 - Forecast")
}
