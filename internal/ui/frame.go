package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/frames"
)

const (
	captionText = "Convective Rain Rate (CRR) - mm/h"
	aboutText   = "Convective Rain Rate (CRR) data from METEOSAT satellite over India. " +
		"The forecast uses optical flow techniques with PySTEPS."
)

// frameHeading is the panel title for the current frame, e.g.
// "21:00 - Actual Observation".
func frameHeading(f frames.Frame) string {
	if f.IsActual() {
		return f.Label + " - Actual Observation"
	}
	return f.Label + " - Forecast Prediction"
}

// badgeLabel names the frame kind the way the badge shows it; forecasts are
// presented as nowcasts.
func badgeLabel(kind frames.Kind) string {
	if kind == frames.KindActual {
		return "Actual"
	}
	return "Nowcast"
}

// renderFramePanel renders the current frame: heading, kind badge, the
// image slot and its caption.
func (m Model) renderFramePanel(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	frame := m.snap.Current()
	inner := width - 2

	badge := m.theme.Styles().KindBadge(frame.Kind).Render(badgeLabel(frame.Kind))
	heading := bg.Render(frameHeading(frame), styles.Text.Bold(true))
	gap := inner - lipgloss.Width(heading) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	top := heading + bg.Spaces(gap) + badge

	imageHeight := height - 2 - 3 // borders, heading, blank, caption
	if imageHeight < 3 {
		imageHeight = 3
	}
	image := m.renderImageSlot(inner, imageHeight)

	caption := lipgloss.PlaceHorizontal(inner, lipgloss.Center,
		styles.MutedText.Render(captionText),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.SurfaceAlt)))

	content := strings.Join([]string{top, "", image, caption}, "\n")
	return m.renderTitledBox("Frame", content, width, height, m.snap.Playing)
}

// renderImageSlot stands in for the image: alt text and the asset path,
// centred in a shaded area.
func (m Model) renderImageSlot(width, height int) string {
	frame := m.snap.Current()
	area := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Foreground(lipgloss.Color(m.theme.Muted))
	body := strings.Join([]string{
		area.Bold(true).Foreground(lipgloss.Color(m.theme.Text)).
			Render(fmt.Sprintf("Precipitation at %s", frame.Label)),
		area.Render(truncateMiddle(m.snap.Image(), width-4)),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// renderColorScale draws the CRR legend: a color ramp labelled 0, 25, 50+.
func (m Model) renderColorScale(width int) string {
	styles := m.theme.Styles()
	ramp := m.theme.RainScale
	barWidth := width - 4
	if barWidth < len(ramp) {
		barWidth = len(ramp)
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		color := ramp[i*len(ramp)/barWidth]
		bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}

	mid := barWidth/2 - 1
	labels := padRight("0", mid) + padRight("25", barWidth-mid-3) + "50+"

	return strings.Join([]string{
		styles.Text.Bold(true).Render("Color Scale (mm/h)"),
		bar.String(),
		styles.MutedText.Render(labels),
	}, "\n")
}

// renderAbout renders the data description block.
func (m Model) renderAbout(width int) string {
	styles := m.theme.Styles()
	body := lipgloss.NewStyle().Width(width).Render(styles.MutedText.Render(aboutText))
	return styles.Text.Bold(true).Render("About This Data") + "\n" + body
}
