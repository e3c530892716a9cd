package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/state"
)

// renderMain renders the standard layout: header, command bar, the frame
// and timeline panels, legend and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderBody() string {
	// header, command bar, footer (2 lines), legend (3 lines) and about.
	chrome := 2 + 2 + 4
	available := m.height - chrome
	timelineHeight := m.snap.Total() + 4
	if m.snap.Mode == state.ModeVideo {
		timelineHeight += 4
	}

	if m.width < LayoutCompactWidth {
		frameHeight := available - timelineHeight
		if frameHeight < LayoutMinFrameHeight {
			frameHeight = LayoutMinFrameHeight
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderFramePanel(m.width, frameHeight),
			m.renderColorScale(m.width),
			m.renderTimeline(m.width, timelineHeight),
		)
	}

	leftWidth := m.width - LayoutTimelineWidth - 1
	frameHeight := available - 4
	if frameHeight < LayoutMinFrameHeight {
		frameHeight = LayoutMinFrameHeight
	}
	if timelineHeight < frameHeight {
		timelineHeight = frameHeight
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderFramePanel(leftWidth, frameHeight),
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(leftWidth/2).Render(m.renderColorScale(leftWidth/2)),
			m.renderAbout(leftWidth-leftWidth/2),
		),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.renderTimeline(LayoutTimelineWidth, timelineHeight))
}

// renderFullscreen gives the frame the whole screen with a one-line
// timeline underneath and the player controls in video mode.
func (m Model) renderFullscreen() string {
	var below []string
	below = append(below, m.renderTimelineStrip(m.width))
	if m.snap.Mode == state.ModeVideo {
		below = append(below, m.renderVideoControls(m.width))
	}
	footer := strings.Join(below, "\n")

	frameHeight := m.height - 1 - lipgloss.Height(footer)
	if frameHeight < LayoutMinFrameHeight {
		frameHeight = LayoutMinFrameHeight
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFramePanel(m.width, frameHeight),
		footer,
	)
}
