// Package state holds the viewer's selection state machine.
//
// # Overview
//
// Session is one explicit record of what the viewer shows:
//
//	date ──▶ frames.Sequence ──▶ index ∈ [0, N-1]
//	mode (standard | video), fullscreen, playing, generation
//
// Every change goes through a transition method. The presentation layer
// only ever reads a Snapshot.
//
// # Transitions
//
//   - SelectIndex(i): clamp into bounds
//   - Step(±1): move one frame, no-op at either end
//   - ChangeDate(d): rebuild the sequence, index back to 0
//   - SetMode(m): leaving video mode stops playback
//   - ToggleFullscreen(): flips the flag only
//   - Play / Pause / TogglePlay: video mode only
//   - Tick(gen): one auto-play step
//
// # Auto-play rules
//
// Two rules interact during playback:
//
//  1. A tick advances the index and wraps from the last frame to 0.
//  2. After any index change, from a tick or from manual navigation,
//     reaching the last frame sets playing to false.
//
// Rule 2 always runs after rule 1, so the visible behaviour is "play
// forward once and stop at the last frame".
//
// # Generations
//
// Each start or stop of playback bumps a generation counter. Ticks carry
// the generation they were scheduled under and Session.Tick ignores any
// that do not match. A tick that was already queued when playback stopped
// therefore cannot move the index.
//
// # Controller
//
// Controller wraps a Session and a playback.Driver. Each public method
// applies a transition and then reconciles the driver: stop it when the
// session is idle, (re)start it when the session's generation differs
// from the one the driver is ticking for. Only one ticker is ever live.
//
// # Concurrency
//
// Session and Controller are not safe for concurrent use. The TUI calls
// them from the Bubble Tea update loop only; the driver's goroutine never
// touches session state, it only sends Tick values.
package state
