package app

import (
	"sync"
	"time"
)

// DefaultSaveDelay is the default window for coalescing viewport saves.
const DefaultSaveDelay = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback run after the delay.
// Only the most recently scheduled callback runs.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	pending  func()
	mu       sync.Mutex
	seq      uint64

	// running serializes callbacks so Flush waits for one already in flight.
	running sync.Mutex
}

// NewDebouncer creates a Debouncer. A zero duration uses DefaultSaveDelay.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration == 0 {
		duration = DefaultSaveDelay
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules callback, replacing anything already scheduled.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = callback
	d.timer = time.AfterFunc(d.duration, func() {
		d.running.Lock()
		defer d.running.Unlock()
		d.mu.Lock()
		run := d.take(seq)
		d.mu.Unlock()
		if run != nil {
			run()
		}
	})
}

// Flush runs the pending callback now, on the calling goroutine, after any
// callback already running has returned. It reports whether anything was
// pending.
func (d *Debouncer) Flush() bool {
	d.running.Lock()
	defer d.running.Unlock()
	d.mu.Lock()
	run := d.take(d.seq)
	d.mu.Unlock()
	if run == nil {
		return false
	}
	run()
	return true
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// take claims the pending callback if seq is still current. d.mu must be held.
func (d *Debouncer) take(seq uint64) func() {
	if seq != d.seq || d.pending == nil {
		return nil
	}
	run := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return run
}
