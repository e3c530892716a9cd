package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nowcast/internal/assets"
	"github.com/five82/nowcast/internal/frames"
	"github.com/five82/nowcast/internal/playback"
	"github.com/five82/nowcast/internal/prefs"
	"github.com/five82/nowcast/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *state.Controller
	Assets     *assets.Client     // optional; enables the host status probe
	Prefetcher *assets.Prefetcher // optional
	MinDate    time.Time
	MaxDate    time.Time
	ThemeName  string
	PrefsPath  string
	Logger     *slog.Logger
}

// assetState tracks what the viewer knows about the image host.
type assetState int

const (
	assetsUnconfigured assetState = iota
	assetsChecking
	assetsOnline
	assetsOffline
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc // ends outstanding commands on quit
	ctrl       *state.Controller
	assets     *assets.Client
	prefetcher *assets.Prefetcher
	logger     *slog.Logger
	prefsPath  string

	keys     keyMap
	help     help.Model
	progress progress.Model
	theme    Theme

	width  int
	height int
	ready  bool

	snap     state.Snapshot
	showHelp bool
	picker   datePicker
	notice   string

	assetStatus assetState
	warmed      map[string]assets.Result
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	themeName := opts.ThemeName
	if !HasTheme(themeName) {
		if themeName != "" {
			logger.Warn("unknown theme, using default", "theme", themeName, "default", prefs.DefaultTheme())
		}
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	minDate, maxDate := opts.MinDate, opts.MaxDate
	if minDate.IsZero() {
		minDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if maxDate.IsZero() {
		maxDate = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	status := assetsUnconfigured
	if opts.Assets != nil {
		status = assetsChecking
	}

	m := Model{
		ctx:         ctx,
		cancel:      cancel,
		ctrl:        opts.Controller,
		assets:      opts.Assets,
		prefetcher:  opts.Prefetcher,
		logger:      logger,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       GetTheme(themeName),
		picker:      newDatePicker(minDate, maxDate),
		assetStatus: status,
		warmed:      make(map[string]assets.Result),
	}
	m.applyTheme()
	m.refresh()
	return m
}

// ThemeName returns the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForTickCmd(m.ctx, m.ctrl.Ticks()),
		healthCmd(m.ctx, m.assets),
		m.prefetchCurrent(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case playTickMsg:
		if m.ctrl.HandleTick(playback.Tick(msg)) {
			m.refresh()
		} else {
			m.logger.Debug("stale play tick dropped", "generation", msg.Gen)
		}
		return m, waitForTickCmd(m.ctx, m.ctrl.Ticks())

	case healthMsg:
		if msg.err != nil {
			m.assetStatus = assetsOffline
			m.logger.Warn("asset host unreachable", "error", msg.err)
		} else {
			m.assetStatus = assetsOnline
		}
		return m, nil

	case prefetchDoneMsg:
		m.warmed[msg.date] = msg.result
		return m, nil
	}

	if m.picker.active {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.picker.active {
		return m.renderDatePicker()
	}
	if m.snap.Fullscreen {
		return m.renderFullscreen()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.picker.active {
		return m.handlePickerKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save prefs failed", "error", err)
			}
		}

	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()
	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Prev()
	case key.Matches(msg, m.keys.Up):
		m.ctrl.SelectIndex(m.snap.Index - 1)
	case key.Matches(msg, m.keys.Down):
		m.ctrl.SelectIndex(m.snap.Index + 1)
	case key.Matches(msg, m.keys.First):
		m.ctrl.SelectIndex(0)
	case key.Matches(msg, m.keys.Last):
		m.ctrl.SelectIndex(m.snap.Total() - 1)

	case key.Matches(msg, m.keys.Fullscreen):
		m.ctrl.ToggleFullscreen()

	case key.Matches(msg, m.keys.ToggleMode):
		m.ctrl.ToggleMode()

	case key.Matches(msg, m.keys.Play):
		if m.snap.Mode != state.ModeVideo {
			m.notice = "Switch to video mode (v) to play"
			break
		}
		if !m.ctrl.TogglePlay() && !m.snap.Playing && !m.snap.CanNext() {
			m.notice = "Already at the last frame"
		}

	case key.Matches(msg, m.keys.PickDate):
		m.refresh()
		return m, m.picker.open(m.snap.Date)

	case key.Matches(msg, m.keys.PrevDay):
		return m.shiftDate(-1)
	case key.Matches(msg, m.keys.NextDay):
		return m.shiftDate(1)
	}

	m.refresh()
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.picker.close()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		date, err := m.picker.validate(m.picker.value())
		if err != nil {
			m.picker.err = err.Error()
			return m, nil
		}
		m.picker.close()
		return m.changeDate(date)
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.update(msg)
	return m, cmd
}

// shiftDate moves the selected date by days, staying inside the picker
// bounds.
func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	next := m.snap.Sequence.Date.AddDate(0, 0, days).Format(frames.DateLayout)
	if _, err := m.picker.validate(next); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	return m.changeDate(next)
}

func (m Model) changeDate(date string) (tea.Model, tea.Cmd) {
	if err := m.ctrl.ChangeDate(date); err != nil {
		m.notice = fmt.Sprintf("Cannot show %s", date)
		return m, nil
	}
	m.refresh()
	return m, m.prefetchCurrent()
}

func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText

	m.progress = progress.New(
		progress.WithGradient(m.theme.Actual, m.theme.Forecast),
		progress.WithoutPercentage(),
	)
	m.picker.applyTheme(m.theme)
}

func (m Model) prefetchCurrent() tea.Cmd {
	if m.prefetcher == nil {
		return nil
	}
	date := m.snap.Date
	if _, done := m.warmed[date]; done {
		return nil
	}
	return prefetchCmd(m.ctx, m.prefetcher, date, m.snap.Sequence.Images)
}

// Messages

// playTickMsg carries one auto-play tick into the event loop.
type playTickMsg playback.Tick

type healthMsg struct {
	health assets.Health
	err    error
}

type prefetchDoneMsg struct {
	date   string
	result assets.Result
}

// Commands

// waitForTickCmd blocks for the next driver tick. It is re-issued after
// every tick so exactly one waiter is outstanding.
func waitForTickCmd(ctx context.Context, ticks <-chan playback.Tick) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case t, ok := <-ticks:
			if !ok {
				return nil
			}
			return playTickMsg(t)
		}
	}
}

func healthCmd(ctx context.Context, client *assets.Client) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
		defer cancel()
		h, err := client.Health(ctx)
		if err == nil && !strings.EqualFold(h.Status, "ok") {
			err = fmt.Errorf("asset host status %q", h.Status)
		}
		return healthMsg{health: h, err: err}
	}
}

func prefetchCmd(ctx context.Context, p *assets.Prefetcher, date string, paths []string) tea.Cmd {
	paths = append([]string(nil), paths...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, PrefetchTimeout)
		defer cancel()
		return prefetchDoneMsg{date: date, result: p.Warm(ctx, paths)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	m := New(opts)
	defer m.ctrl.Close()
	defer m.cancel()
	// The program watches the caller's context; m.ctx also ends on quit.
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(parent))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		// Interrupted by signal; not a failure.
		return nil
	}
	return err
}
