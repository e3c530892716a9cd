package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowcast/internal/frames"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar and footer
	SurfaceAlt string // Panels
	FocusBg    string // Selected timeline row

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Frame kinds
	Actual   string
	Forecast string

	// RainScale runs from no rain to 50+ mm/h.
	RainScale []string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		kindColors: map[frames.Kind]string{
			frames.KindActual:   t.Actual,
			frames.KindForecast: t.Forecast,
		},
		background: t.Background,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	kindColors map[frames.Kind]string
	background string
}

// KindText colors text by frame kind.
func (s Styles) KindText(kind frames.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.kindColors[kind]))
}

// KindBadge returns a filled badge style for a frame kind.
func (s Styles) KindBadge(kind frames.Kind) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.kindColors[kind])).
		Bold(true).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every text style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// Theme definitions

var themes = map[string]Theme{
	"Monsoon": monsoonTheme(),
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Monsoon", "Dracula", "Slate"}

// GetTheme returns a theme by name, falling back to Monsoon.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return monsoonTheme()
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func monsoonTheme() Theme {
	// Deep sea blues with the green/orange frame coding of the web viewer.
	return Theme{
		Name: "Monsoon",

		Background: "#06141f",
		Surface:    "#0b2233",
		SurfaceAlt: "#0f2c42",
		FocusBg:    "#16405e",

		SelectionBg:   "#1d6fa5",
		SelectionText: "#f0f9ff",

		Border:      "#24506f",
		BorderMuted: "#123049",
		BorderFocus: "#38bdf8",

		Text:    "#e0f2fe",
		Muted:   "#8fb3c9",
		Faint:   "#4f7590",
		Accent:  "#38bdf8",
		Success: "#4ade80",
		Warning: "#fbbf24",
		Danger:  "#f87171",
		Info:    "#22d3ee",

		Actual:   "#4ade80",
		Forecast: "#fb923c",

		RainScale: []string{"#1e3a8a", "#2563eb", "#06b6d4", "#22c55e", "#eab308", "#f97316", "#dc2626"},
	}
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#21222C", // BGDark
		FocusBg:    "#343746", // BGLight

		SelectionBg:   "#44475A",
		SelectionText: "#F8F8F2",

		Border:      "#44475A",
		BorderMuted: "#21222C",
		BorderFocus: "#BD93F9",

		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		Actual:   "#50FA7B",
		Forecast: "#FFB86C",

		RainScale: []string{"#6272A4", "#8BE9FD", "#50FA7B", "#F1FA8C", "#FFB86C", "#FF79C6", "#FF5555"},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		Actual:   "#22c55e", // green-500
		Forecast: "#f97316", // orange-500

		RainScale: []string{"#1e40af", "#3b82f6", "#06b6d4", "#22c55e", "#eab308", "#f97316", "#dc2626"},
	}
}
