package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/state"
)

// renderTimeline renders the vertical list of frames with the selection
// summary and, in video mode, the player controls.
func (m Model) renderTimeline(width, height int) string {
	inner := width - 2
	var b strings.Builder
	b.WriteString(m.renderTimelineRows(inner))
	b.WriteString("\n")
	b.WriteString(m.renderSelection(inner))
	if m.snap.Mode == state.ModeVideo {
		b.WriteString("\n\n")
		b.WriteString(m.renderVideoControls(inner))
	}

	title := ternary(m.snap.Mode == state.ModeVideo, "Video Timeline", "Timeline")
	return m.renderTitledBox(title, b.String(), width, height, false)
}

func (m Model) renderTimelineRows(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	rows := make([]string, 0, m.snap.Total())
	for i, f := range m.snap.Sequence.Frames {
		selected := i == m.snap.Index
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Render("│ ")
		if selected {
			dot = styles.AccentText.Render("▶ ")
		}
		marker := m.theme.Styles().KindText(f.Kind).Render("●")
		label := f.Label + "  " + f.DisplayDate
		line := dot + marker + " " + padRight(label, 14) + " " + m.theme.Styles().KindText(f.Kind).Render(f.Kind.Label())
		if selected {
			line = lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.FocusBg)).
				Width(width).
				Render(line)
		} else {
			line = bg.FillLine(line, width)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// renderSelection is the "Selected: Apr 3 at 21:00 Actual" line.
func (m Model) renderSelection(width int) string {
	styles := m.theme.Styles()
	f := m.snap.Current()
	text := styles.Text.Render(fmt.Sprintf("Selected: %s at %s ", f.DisplayDate, f.Label)) +
		styles.KindBadge(f.Kind).Render(f.Kind.Label())
	return lipgloss.NewStyle().Width(width).Render(text)
}

// renderVideoControls renders prev / play-pause / next, the progress bar
// and the frame counter. Prev and next are dimmed at the ends.
func (m Model) renderVideoControls(width int) string {
	styles := m.theme.Styles()
	enabled := styles.Text
	disabled := styles.FaintText

	prev := ternary(m.snap.CanPrev(), enabled.Render("◀ Prev"), disabled.Render("◀ Prev"))
	next := ternary(m.snap.CanNext(), enabled.Render("Next ▶"), disabled.Render("Next ▶"))
	play := styles.AccentText.Bold(true).Render(ternary(m.snap.Playing, "❚❚ Pause", "▶ Play"))

	gap := (width - lipgloss.Width(prev) - lipgloss.Width(play) - lipgloss.Width(next)) / 2
	if gap < 1 {
		gap = 1
	}
	buttons := prev + strings.Repeat(" ", gap) + play + strings.Repeat(" ", gap) + next

	bar := m.progress
	bar.Width = width
	f := m.snap.Current()
	counter := styles.MutedText.Render(fmt.Sprintf("Frame %d of %d - %s", m.snap.FrameNumber(), m.snap.Total(), f.Kind.Label()))

	return strings.Join([]string{buttons, bar.ViewAs(m.snap.Progress()), counter}, "\n")
}

// renderTimelineStrip is the single-row timeline used in fullscreen.
func (m Model) renderTimelineStrip(width int) string {
	styles := m.theme.Styles()
	cells := make([]string, 0, m.snap.Total())
	for i, f := range m.snap.Sequence.Frames {
		cell := m.theme.Styles().KindText(f.Kind).Render("● ") + f.Label
		if i == m.snap.Index {
			cell = styles.Selected.Bold(true).Render(" " + f.Label + " ")
		}
		cells = append(cells, cell)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(cells, "  "))
}
