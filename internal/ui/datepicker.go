package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/frames"
)

// datePicker is the modal date input. It enforces the selectable window so
// the core never sees an out-of-range or malformed date.
type datePicker struct {
	input  textinput.Model
	active bool
	min    time.Time
	max    time.Time
	err    string
}

func newDatePicker(minDate, maxDate time.Time) datePicker {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(frames.DateLayout)
	ti.Width = len(frames.DateLayout) + 1
	ti.Prompt = "Date: "
	return datePicker{input: ti, min: minDate, max: maxDate}
}

func (p *datePicker) applyTheme(t Theme) {
	p.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
	p.input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	p.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	p.input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
}

func (p *datePicker) open(current string) tea.Cmd {
	p.active = true
	p.err = ""
	p.input.SetValue(current)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *datePicker) close() {
	p.active = false
	p.err = ""
	p.input.Blur()
}

func (p datePicker) value() string {
	return strings.TrimSpace(p.input.Value())
}

func (p datePicker) update(msg tea.Msg) (datePicker, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		p.err = ""
	}
	return p, cmd
}

// validate checks value is a YYYY-MM-DD date inside the window.
func (p datePicker) validate(value string) (string, error) {
	t, err := time.Parse(frames.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	if t.Before(p.min) || t.After(p.max) {
		return "", fmt.Errorf("dates run from %s to %s",
			p.min.Format(frames.DateLayout), p.max.Format(frames.DateLayout))
	}
	return t.Format(frames.DateLayout), nil
}

// renderDatePicker renders the date modal centred over the screen.
func (m Model) renderDatePicker() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Select Date"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.picker.input.View())
	b.WriteString("\n\n")
	if m.picker.err != "" {
		b.WriteString(styles.DangerText.Render(m.picker.err))
	} else {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s … %s",
			m.picker.min.Format(frames.DateLayout), m.picker.max.Format(frames.DateLayout))))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" apply  ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
