package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/state"
	"github.com/five82/nowcast/internal/timestamp"
)

const (
	appTitle   = "India Weather Nowcast Viewer"
	footerText = "Precipitation nowcasting system using PySTEPS and METEOSAT satellite data"
)

// renderHeader renders the title bar: logo, date, data timestamp, mode and
// asset host state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("nowcast", styles.Logo)}
	if !compact {
		parts = append(parts, bg.Render(appTitle, styles.Text.Bold(true)))
	}

	seq := m.snap.Sequence
	dateLine := bg.Render(seq.LongDate, styles.AccentText)
	if !compact {
		dateLine += bg.Render(" - Satellite data from ", styles.MutedText) +
			bg.Render(timestamp.Format(seq.BaseTimestamp), styles.InfoText)
	}
	parts = append(parts, dateLine)
	parts = append(parts, m.renderModeTabs(styles, bg))

	if asset := m.renderAssetStatus(styles, bg); asset != "" {
		parts = append(parts, asset)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderModeTabs shows Standard View / Video Mode with the active one lit.
func (m Model) renderModeTabs(styles Styles, bg BgStyle) string {
	active := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Bold(true)
	tab := func(label string, on bool) string {
		if on {
			return active.Render(" " + label + " ")
		}
		return bg.Render(" "+label+" ", styles.MutedText)
	}
	return tab("Standard View", m.snap.Mode == state.ModeStandard) +
		tab("Video Mode", m.snap.Mode == state.ModeVideo)
}

func (m Model) renderAssetStatus(styles Styles, bg BgStyle) string {
	var status string
	switch m.assetStatus {
	case assetsChecking:
		status = bg.Render("● assets…", styles.WarningText)
	case assetsOnline:
		status = bg.Render("● assets", styles.SuccessText)
	case assetsOffline:
		status = bg.Render("● assets offline", styles.DangerText)
	default:
		return ""
	}
	if res, ok := m.warmed[m.snap.Date]; ok {
		status += bg.Space() + bg.Render(
			fmt.Sprintf("cached %d/%d", res.Fetched, m.snap.Total()), styles.FaintText)
	}
	return status
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"←/→", "Frame"},
		{"v", ternary(m.snap.Mode == state.ModeVideo, "Standard", "Video")},
	}
	if m.snap.Mode == state.ModeVideo {
		commands = append(commands, cmd{"Space", ternary(m.snap.Playing, "Pause", "Play")})
	}
	commands = append(commands,
		cmd{"f", ternary(m.snap.Fullscreen, "Exit fullscreen", "Fullscreen")},
		cmd{"d", "Date"},
		cmd{"[/]", "Day"},
		cmd{"?", "More"},
	)

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.notice != "" {
		segments = append(segments, bg.Render(truncate(m.notice, 48), styles.WarningText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderFooter shows the short key help and the system credit line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	keys := m.help.View(m.keys)
	credit := styles.FaintText.Render(footerText)
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(keys + "\n" + credit)
}
