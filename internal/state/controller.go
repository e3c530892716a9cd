package state

import (
	"log/slog"
	"time"

	"github.com/five82/nowcast/internal/playback"
)

// Controller is the single entry point for viewer transitions. After each
// transition it reconciles the auto-play driver with the session, so a
// stopped session never has a live ticker by the time the next event is
// handled.
type Controller struct {
	session  *Session
	driver   *playback.Driver
	interval time.Duration
	logger   *slog.Logger
}

// NewController pairs a session with a driver ticking every interval.
func NewController(session *Session, driver *playback.Driver, interval time.Duration, logger *slog.Logger) *Controller {
	if driver == nil {
		driver = playback.NewDriver(nil)
	}
	if interval <= 0 {
		interval = playback.DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		session:  session,
		driver:   driver,
		interval: interval,
		logger:   logger,
	}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	return c.session.Snapshot()
}

// Ticks exposes the driver's tick channel.
func (c *Controller) Ticks() <-chan playback.Tick {
	return c.driver.Ticks()
}

// Interval returns the auto-play interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// SelectIndex jumps to frame i.
func (c *Controller) SelectIndex(i int) bool {
	changed := c.session.SelectIndex(i)
	c.sync()
	return changed
}

// Next steps forward one frame, holding at the last.
func (c *Controller) Next() bool {
	return c.Step(1)
}

// Prev steps back one frame, holding at the first.
func (c *Controller) Prev() bool {
	return c.Step(-1)
}

// Step moves by delta frames within bounds.
func (c *Controller) Step(delta int) bool {
	changed := c.session.Step(delta)
	c.sync()
	return changed
}

// ChangeDate switches the session to date.
func (c *Controller) ChangeDate(date string) error {
	if err := c.session.ChangeDate(date); err != nil {
		c.logger.Warn("date change rejected", "date", date, "error", err)
		return err
	}
	c.logger.Debug("date changed", "date", date, "frames", c.session.seq.Len())
	c.sync()
	return nil
}

// SetMode switches between standard and video mode.
func (c *Controller) SetMode(mode Mode) {
	c.session.SetMode(mode)
	c.sync()
}

// ToggleMode flips between standard and video mode.
func (c *Controller) ToggleMode() Mode {
	next := ModeVideo
	if c.session.mode == ModeVideo {
		next = ModeStandard
	}
	c.SetMode(next)
	return next
}

// ToggleFullscreen flips fullscreen.
func (c *Controller) ToggleFullscreen() {
	c.session.ToggleFullscreen()
}

// Play starts playback.
func (c *Controller) Play() bool {
	playing := c.session.Play()
	c.sync()
	return playing
}

// Pause stops playback.
func (c *Controller) Pause() {
	c.session.Pause()
	c.sync()
}

// TogglePlay flips playback.
func (c *Controller) TogglePlay() bool {
	playing := c.session.TogglePlay()
	c.sync()
	return playing
}

// HandleTick applies a driver tick. Stale ticks are dropped.
func (c *Controller) HandleTick(t playback.Tick) bool {
	applied := c.session.Tick(t.Gen)
	c.sync()
	return applied
}

// Close stops the driver.
func (c *Controller) Close() {
	c.driver.Stop()
}

func (c *Controller) sync() {
	if !c.session.Playing() {
		if _, running := c.driver.Running(); running {
			c.driver.Stop()
			c.logger.Debug("playback stopped", "index", c.session.index)
		}
		return
	}
	gen := c.session.Generation()
	if running, ok := c.driver.Running(); ok && running == gen {
		return
	}
	c.driver.Start(gen, c.interval)
	c.logger.Debug("playback started", "generation", gen, "interval", c.interval)
}
