// Package poll runs a function on a fixed interval until it reports
// completion, the context ends, or the poller is stopped.
package poll

import (
	"context"
	"sync/atomic"
	"time"
)

// Func is one polling attempt. Returning done stops the loop; returning an
// error stops the loop and surfaces the error.
type Func func(ctx context.Context) (done bool, err error)

// Poller drives a Func on a ticker. The first attempt runs immediately,
// before the first tick. A Poller is single-use.
type Poller struct {
	interval time.Duration
	stopped  atomic.Bool
}

func New(interval time.Duration) *Poller {
	return &Poller{interval: interval}
}

// Stop ends the loop. An attempt already in flight keeps running, but its
// result is discarded so a stale answer never lands after the stop.
func (p *Poller) Stop() {
	p.stopped.Store(true)
}

// Run polls until fn reports done, fn errors, ctx ends, or Stop is called.
// Returns nil when stopped or done, ctx.Err() on cancellation.
func (p *Poller) Run(ctx context.Context, fn Func) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if p.stopped.Load() {
			return nil
		}

		done, err := fn(ctx)
		if p.stopped.Load() {
			return nil
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
