package playback

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is used when Start is given a non-positive interval.
const DefaultInterval = time.Second

// Tick is one auto-play step, tagged with the generation that started it.
type Tick struct {
	Gen uint64
	At  time.Time
}

// Driver runs at most one repeating ticker and publishes its ticks on a
// channel. It never touches viewer state; consumers apply ticks on their
// own event loop and discard those whose generation is stale.
type Driver struct {
	clock clockwork.Clock
	ticks chan Tick

	mu       sync.Mutex
	running  bool
	gen      uint64
	interval time.Duration
	ticker   clockwork.Ticker
	done     chan struct{}
}

// NewDriver returns an idle driver on clock; nil uses the real clock.
func NewDriver(clock clockwork.Clock) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Driver{
		clock: clock,
		ticks: make(chan Tick),
	}
}

// Ticks returns the channel ticks are delivered on.
func (d *Driver) Ticks() <-chan Tick {
	return d.ticks
}

// Start cancels any running ticker and starts a new one for gen.
func (d *Driver) Start(gen uint64, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	ticker := d.clock.NewTicker(interval)
	done := make(chan struct{})
	d.running = true
	d.gen = gen
	d.interval = interval
	d.ticker = ticker
	d.done = done

	go d.run(ticker, done, gen)
}

// Stop cancels the running ticker, if any. It does not wait for the
// consumer; a tick already in flight carries a generation the consumer
// has moved past.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Running reports the generation of the active ticker.
func (d *Driver) Running() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen, d.running
}

// Interval reports the interval of the active ticker, or zero when idle.
func (d *Driver) Interval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return 0
	}
	return d.interval
}

func (d *Driver) stopLocked() {
	if !d.running {
		return
	}
	d.ticker.Stop()
	close(d.done)
	d.running = false
	d.ticker = nil
	d.done = nil
}

func (d *Driver) run(ticker clockwork.Ticker, done <-chan struct{}, gen uint64) {
	for {
		select {
		case <-done:
			return
		case at := <-ticker.Chan():
			select {
			case <-done:
				return
			default:
			}
			select {
			case d.ticks <- Tick{Gen: gen, At: at}:
			case <-done:
				return
			}
		}
	}
}
