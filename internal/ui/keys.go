package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Frames
	Next  key.Binding
	Prev  key.Binding
	Up    key.Binding
	Down  key.Binding
	First key.Binding
	Last  key.Binding

	// Playback and layout
	Play       key.Binding
	ToggleMode key.Binding
	Fullscreen key.Binding

	// Dates
	PickDate key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding

	// Global
	CycleTheme key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Date picker
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next frame"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous frame"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Select earlier"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Select later"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First frame"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last frame"),
		),

		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("Space", "Play/pause"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Standard/video"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("esc", "f", "F"),
			key.WithHelp("f/esc", "Fullscreen"),
		),

		PickDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Select date"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next day"),
		),

		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.ToggleMode, k.Fullscreen, k.PickDate, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down, k.First, k.Last},
		{k.Play, k.ToggleMode, k.Fullscreen},
		{k.PickDate, k.PrevDay, k.NextDay},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
