package state

import "github.com/five82/nowcast/internal/frames"

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Date       string
	Sequence   frames.Sequence
	Index      int
	Mode       Mode
	Fullscreen bool
	Playing    bool
	Generation uint64
}

// Total returns the number of frames.
func (s Snapshot) Total() int {
	return s.Sequence.Len()
}

// FrameNumber returns the one-based position of the current frame.
func (s Snapshot) FrameNumber() int {
	return s.Index + 1
}

// Current returns the frame at the current index.
func (s Snapshot) Current() frames.Frame {
	if s.Index < 0 || s.Index >= s.Sequence.Len() {
		return frames.Frame{}
	}
	return s.Sequence.Frames[s.Index]
}

// Image returns the image path for the current frame.
func (s Snapshot) Image() string {
	if s.Index < 0 || s.Index >= len(s.Sequence.Images) {
		return ""
	}
	return s.Sequence.Images[s.Index]
}

// CanPrev reports whether the previous control is enabled.
func (s Snapshot) CanPrev() bool {
	return s.Index > 0
}

// CanNext reports whether the next control is enabled.
func (s Snapshot) CanNext() bool {
	return s.Index < s.Sequence.Len()-1
}

// Progress returns the position through the sequence in [0, 1].
func (s Snapshot) Progress() float64 {
	last := s.Sequence.Len() - 1
	if last <= 0 {
		return 0
	}
	return float64(s.Index) / float64(last)
}
