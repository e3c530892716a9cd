package state

import (
	"fmt"

	"github.com/five82/nowcast/internal/frames"
)

// DefaultDate is the date a session opens on when none is given.
const DefaultDate = "2025-04-03"

// Mode selects between the plain timeline and the video player.
type Mode int

const (
	ModeStandard Mode = iota
	ModeVideo
)

func (m Mode) String() string {
	if m == ModeVideo {
		return "video"
	}
	return "standard"
}

// Session is the viewer's selection state machine. It is not safe for
// concurrent use; all transitions are expected to run on one event loop.
type Session struct {
	source frames.Source

	date       string
	seq        frames.Sequence
	index      int
	mode       Mode
	fullscreen bool
	playing    bool

	// generation advances whenever playback starts or stops so that ticks
	// from an earlier activation can be recognised and dropped.
	generation uint64
}

// NewSession builds the sequence for date (DefaultDate when empty) and
// returns a session positioned on its first frame.
func NewSession(source frames.Source, date string) (*Session, error) {
	if source == nil {
		return nil, fmt.Errorf("session requires a frame source")
	}
	if date == "" {
		date = DefaultDate
	}
	seq, err := source.Build(date)
	if err != nil {
		return nil, fmt.Errorf("build initial sequence: %w", err)
	}
	if seq.Len() == 0 {
		return nil, fmt.Errorf("sequence for %s is empty", date)
	}
	return &Session{source: source, date: date, seq: seq}, nil
}

// SelectIndex moves to i, clamped into the sequence bounds. It reports
// whether the index changed.
func (s *Session) SelectIndex(i int) bool {
	next := s.clamp(i)
	if next == s.index {
		return false
	}
	s.index = next
	s.stopAtEnd()
	return true
}

// Step moves by delta frames, holding at either end.
func (s *Session) Step(delta int) bool {
	return s.SelectIndex(s.index + delta)
}

// ChangeDate rebuilds the sequence for date and returns to the first
// frame. A date that cannot be built leaves the session untouched.
func (s *Session) ChangeDate(date string) error {
	seq, err := s.source.Build(date)
	if err != nil {
		return err
	}
	if seq.Len() == 0 {
		return fmt.Errorf("sequence for %s is empty", date)
	}
	s.date = date
	s.seq = seq
	s.index = 0
	s.stopAtEnd()
	return nil
}

// SetMode switches between standard and video mode. Leaving video mode
// stops playback.
func (s *Session) SetMode(mode Mode) {
	if mode == s.mode {
		return
	}
	s.mode = mode
	if mode != ModeVideo {
		s.halt()
	}
}

// ToggleFullscreen flips the fullscreen flag.
func (s *Session) ToggleFullscreen() {
	s.fullscreen = !s.fullscreen
}

// Play starts (or restarts) playback from the current frame. It only
// applies in video mode and reports whether playback is now active.
func (s *Session) Play() bool {
	if s.mode != ModeVideo {
		return false
	}
	s.playing = true
	s.generation++
	s.stopAtEnd()
	return s.playing
}

// Pause stops playback.
func (s *Session) Pause() {
	s.halt()
}

// TogglePlay pauses when playing and plays otherwise.
func (s *Session) TogglePlay() bool {
	if s.playing {
		s.halt()
		return false
	}
	return s.Play()
}

// Tick applies one auto-play step for generation gen. Ticks from another
// generation, or arriving while not playing in video mode, are ignored.
// The step wraps past the last frame, but reaching the last frame stops
// playback, so a run plays forward once and halts there.
func (s *Session) Tick(gen uint64) bool {
	if !s.playing || s.mode != ModeVideo || gen != s.generation {
		return false
	}
	if s.index >= s.seq.Len()-1 {
		s.index = 0
	} else {
		s.index++
	}
	s.stopAtEnd()
	return true
}

// Generation returns the current playback generation.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Playing reports whether auto-play is active.
func (s *Session) Playing() bool {
	return s.playing
}

// Snapshot returns a read-only copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Date:       s.date,
		Sequence:   s.seq.Clone(),
		Index:      s.index,
		Mode:       s.mode,
		Fullscreen: s.fullscreen,
		Playing:    s.playing,
		Generation: s.generation,
	}
}

// stopAtEnd halts playback once the last frame is showing. It runs after
// every index change, whatever caused it.
func (s *Session) stopAtEnd() {
	if s.playing && s.index == s.seq.Len()-1 {
		s.halt()
	}
}

func (s *Session) halt() {
	if !s.playing {
		return
	}
	s.playing = false
	s.generation++
}

func (s *Session) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if last := s.seq.Len() - 1; i > last {
		return last
	}
	return i
}
