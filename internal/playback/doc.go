// Package playback drives auto-play for the viewer.
//
// A Driver owns a single repeating ticker at a time. Start always cancels
// the previous ticker first, so two timers never run together. Each tick
// carries the generation number it was started with:
//
//	Start(gen=4) ──tick{4}──tick{4}──Stop()
//	                                   │
//	                 tick{4} in flight ┘  → consumer sees gen 4 != 5, drops it
//
// The consumer (state.Controller) bumps its generation whenever playback
// stops or restarts, which makes cancellation total: a tick that was
// already scheduled when playback stopped has no effect.
//
// Time comes from a clockwork.Clock so tests can step the ticker with a
// fake clock instead of sleeping.
package playback
