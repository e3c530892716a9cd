package assets

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Result summarises one Warm call.
type Result struct {
	Fetched int
	Missing int
	Failed  int
	Skipped int
}

// Prefetcher warms image assets ahead of display. It is best effort: it
// never returns errors, only logs and counts them. A nil *Prefetcher is a
// valid no-op.
type Prefetcher struct {
	fetcher Fetcher
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// PrefetchOptions tune pacing and failure handling.
type PrefetchOptions struct {
	Rate        float64 // requests per second; <= 0 means unlimited
	Burst       int
	MaxFailures uint32 // consecutive failures before the breaker opens
	Cooldown    time.Duration
}

// NewPrefetcher wraps fetcher with a rate limiter and a circuit breaker.
func NewPrefetcher(fetcher Fetcher, opts PrefetchOptions, logger *slog.Logger) *Prefetcher {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 3
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 30 * time.Second
	}
	maxFailures := opts.MaxFailures

	p := &Prefetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(limit, opts.Burst),
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "asset-prefetch",
		MaxRequests: 1,
		Timeout:     opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("prefetch breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return p
}

// Warm fetches each path not already warmed, in order. It stops early when
// ctx is done or the breaker opens; the remaining paths count as skipped.
func (p *Prefetcher) Warm(ctx context.Context, paths []string) Result {
	var res Result
	if p == nil || p.fetcher == nil {
		return res
	}

	pending := p.claim(paths)
	for i, path := range pending {
		if err := p.limiter.Wait(ctx); err != nil {
			res.Skipped += len(pending) - i
			p.release(pending[i:])
			break
		}

		missing := false
		_, err := p.breaker.Execute(func() (interface{}, error) {
			n, err := p.fetcher.Fetch(ctx, path)
			if errors.Is(err, ErrNotFound) {
				// A missing frame is an answer, not a host failure.
				missing = true
				return n, nil
			}
			return n, err
		})
		if err != nil && (errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)) {
			res.Skipped += len(pending) - i
			p.release(pending[i:])
			p.logger.Warn("prefetch halted, asset host unavailable", "remaining", len(pending)-i)
			break
		}
		if err != nil {
			res.Failed++
			p.release([]string{path})
			p.logger.Debug("prefetch failed", "path", path, "error", err)
			continue
		}
		if missing {
			res.Missing++
			continue
		}
		res.Fetched++
	}
	p.logger.Debug("prefetch done",
		"fetched", res.Fetched, "missing", res.Missing, "failed", res.Failed, "skipped", res.Skipped)
	return res
}

// claim marks unseen paths as in flight and returns them, dropping repeats.
func (p *Prefetcher) claim(paths []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, ok := p.seen[path]; ok {
			continue
		}
		p.seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}

func (p *Prefetcher) release(paths []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, path := range paths {
		delete(p.seen, path)
	}
}
