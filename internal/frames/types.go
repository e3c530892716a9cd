package frames

import (
	"fmt"
	"time"
)

// Kind distinguishes observed frames from predicted ones.
type Kind int

const (
	KindActual Kind = iota
	KindForecast
)

// String returns the lowercase form used in image file names.
func (k Kind) String() string {
	if k == KindForecast {
		return "forecast"
	}
	return "actual"
}

// Label returns the capitalised form used in listings.
func (k Kind) Label() string {
	if k == KindForecast {
		return "Forecast"
	}
	return "Actual"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "actual":
		*k = KindActual
	case "forecast":
		*k = KindForecast
	default:
		return fmt.Errorf("unknown frame kind %q", text)
	}
	return nil
}

// Frame describes one observation or forecast slot.
type Frame struct {
	Label       string `json:"label"`
	Kind        Kind   `json:"type"`
	DisplayDate string `json:"date"`
}

// IsActual reports whether the frame is an observed slot.
func (f Frame) IsActual() bool {
	return f.Kind == KindActual
}

// Sequence is the ordered, index-aligned list of frames and image paths
// derived from one calendar date.
type Sequence struct {
	Date          time.Time `json:"-"`
	BaseTimestamp string    `json:"baseTimestamp"`
	LongDate      string    `json:"longDate"`
	Frames        []Frame   `json:"timeIntervals"`
	Images        []string  `json:"images"`
}

// Len returns the number of frames.
func (s Sequence) Len() int {
	return len(s.Frames)
}

// ISODate returns the source date in YYYY-MM-DD form.
func (s Sequence) ISODate() string {
	if s.Date.IsZero() {
		return ""
	}
	return s.Date.Format(DateLayout)
}

// ActualCount returns how many leading frames are observed slots.
func (s Sequence) ActualCount() int {
	n := 0
	for _, f := range s.Frames {
		if f.Kind == KindActual {
			n++
		}
	}
	return n
}

// Clone returns a copy whose slices do not alias s.
func (s Sequence) Clone() Sequence {
	dup := s
	dup.Frames = append([]Frame(nil), s.Frames...)
	dup.Images = append([]string(nil), s.Images...)
	return dup
}
