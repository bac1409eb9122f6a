package http

import (
	"sync"
	"time"
)

// debouncer collapses bursts of triggers into one callback after a quiet
// period. Each trigger supersedes the previous one and carries a generation
// token so callbacks that were already running when a newer trigger arrived
// can drop their results.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending
// trigger. fn runs on the timer goroutine.
func (d *debouncer) Trigger(fn func(gen uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { fn(gen) })
}

// Current reports whether gen still names the latest trigger.
func (d *debouncer) Current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Stop cancels any pending trigger. Callbacks already running are not
// interrupted.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
