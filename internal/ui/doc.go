// Package ui implements the terminal viewer on Bubble Tea.
//
// # Overview
//
// The viewer shows one nowcast frame at a time for a chosen date: a frame
// panel with the image slot and caption, a timeline of all frames coded by
// kind (actual observation or forecast), and a header carrying the long
// date, the satellite data timestamp and the active mode.
//
// # Architecture
//
// The UI holds no viewer state of its own. Every key press is forwarded to
// a [state.Controller], after which the model re-reads an immutable
// [state.Snapshot] and renders from it. Auto-play ticks arrive on the
// controller's tick channel; the model waits on that channel with a single
// outstanding command and hands each tick back to the controller, which
// discards ticks from a cancelled play generation.
//
// Optional asset wiring probes the image host once at start and warms the
// frame images of each date the user visits.
//
// # Key Bindings
//
//   - ←/→: Previous/next frame
//   - j/k, g/G: Move in the timeline, jump to first/last
//   - v: Toggle standard view and video mode
//   - Space or p: Play/pause (video mode only)
//   - f or Esc: Toggle fullscreen
//   - d: Pick a date; [ and ]: previous/next day
//   - T: Cycle theme (persisted)
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
