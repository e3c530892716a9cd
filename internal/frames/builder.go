package frames

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts shared with the date picker and the CLI.
const (
	DateLayout      = "2006-01-02"
	shortDateLayout = "Jan 2"
	longDateLayout  = "January 2, 2006"
	compactLayout   = "20060102"
)

const (
	defaultSteps       = 9
	defaultActualSteps = 5
	defaultStart       = 21 * time.Hour
	defaultCadence     = 15 * time.Minute
	defaultImageRoot   = "/images"

	day = 24 * time.Hour
)

// Config controls the cadence and split of a built sequence.
type Config struct {
	Steps       int           // total number of frames
	ActualSteps int           // leading frames tagged actual
	Start       time.Duration // offset from midnight of the first slot
	Cadence     time.Duration // spacing between slots
	ImageRoot   string        // path prefix before the YYYYMMDD directory
}

// DefaultConfig returns the nine-slot layout: 21:00 to 23:00, five actual.
func DefaultConfig() Config {
	return Config{
		Steps:       defaultSteps,
		ActualSteps: defaultActualSteps,
		Start:       defaultStart,
		Cadence:     defaultCadence,
		ImageRoot:   defaultImageRoot,
	}
}

// Variant13 returns the thirteen-slot layout running 21:00 to 00:00.
func Variant13() Config {
	cfg := DefaultConfig()
	cfg.Steps = 13
	return cfg
}

// Validate reports configuration that cannot produce a sequence.
func (c Config) Validate() error {
	var errs []error
	if c.Steps < 1 {
		errs = append(errs, fmt.Errorf("steps must be at least 1, got %d", c.Steps))
	}
	if c.ActualSteps < 0 || c.ActualSteps > c.Steps {
		errs = append(errs, fmt.Errorf("actual steps must be within [0, %d], got %d", c.Steps, c.ActualSteps))
	}
	switch {
	case c.Cadence <= 0:
		errs = append(errs, fmt.Errorf("cadence must be positive, got %s", c.Cadence))
	case c.Cadence%time.Minute != 0:
		errs = append(errs, fmt.Errorf("cadence must be whole minutes, got %s", c.Cadence))
	case c.Steps > 1 && time.Duration(c.Steps-1)*c.Cadence >= day:
		// Labels repeat once the slots wrap a full day.
		errs = append(errs, fmt.Errorf("%d steps at %s span a day or more", c.Steps, c.Cadence))
	}
	if c.Start < 0 || c.Start >= day {
		errs = append(errs, fmt.Errorf("start must fall within one day, got %s", c.Start))
	}
	if strings.TrimSpace(c.ImageRoot) == "" {
		errs = append(errs, errors.New("image root is empty"))
	}
	return errors.Join(errs...)
}

// Builder derives frame sequences from calendar dates.
type Builder struct {
	cfg Config
}

// NewBuilder validates cfg and returns a Builder for it.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid frame config: %w", err)
	}
	cfg.ImageRoot = strings.TrimRight(strings.TrimSpace(cfg.ImageRoot), "/")
	return &Builder{cfg: cfg}, nil
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build derives the sequence for an ISO date. The same date always yields
// an equal sequence. Parse failures are returned as-is, wrapped.
func (b *Builder) Build(date string) (Sequence, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return Sequence{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return b.BuildDate(parsed), nil
}

// BuildDate derives the sequence for the calendar day of t.
func (b *Builder) BuildDate(t time.Time) Sequence {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	compact := date.Format(compactLayout)
	short := date.Format(shortDateLayout)
	prefix := b.cfg.ImageRoot + "/" + compact

	seq := Sequence{
		Date:          date,
		BaseTimestamp: compact + "T" + clock(b.cfg.Start, "") + "00Z",
		LongDate:      date.Format(longDateLayout),
		Frames:        make([]Frame, 0, b.cfg.Steps),
		Images:        make([]string, 0, b.cfg.Steps),
	}

	for i := 0; i < b.cfg.Steps; i++ {
		offset := b.cfg.Start + time.Duration(i)*b.cfg.Cadence
		kind := KindForecast
		if i < b.cfg.ActualSteps {
			kind = KindActual
		}
		seq.Frames = append(seq.Frames, Frame{
			Label:       clock(offset, ":"),
			Kind:        kind,
			DisplayDate: short,
		})
		seq.Images = append(seq.Images, prefix+"/"+kind.String()+"_"+clock(offset, "")+".jpg")
	}
	return seq
}

// clock formats an offset from midnight as HH<sep>MM, wrapping at 24h.
func clock(offset time.Duration, sep string) string {
	minutes := int((offset % day) / time.Minute)
	if minutes < 0 {
		minutes += int(day / time.Minute)
	}
	return pad2(minutes/60) + sep + pad2(minutes%60)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock renders an offset from midnight as "HH:MM".
func FormatClock(offset time.Duration) string {
	return clock(offset, ":")
}
