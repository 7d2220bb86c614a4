// Package debounce delays propagation of rapidly changing values until they
// have been stable for a quiet period.
//
// Every Push (re)starts the timer. Only the value present when the timer
// fires without being superseded is published; a superseded value is never
// published, even if its timer was already running when it was replaced.
package debounce

import (
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, matching time.Timer.Stop.
	Stop() bool
}

// Clock schedules callbacks. The real clock is backed by time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall-clock Clock.
func RealClock() Clock { return realClock{} }

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock injects the clock used to schedule publications.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// Debouncer publishes the last pushed value once input has been quiet for
// the configured delay. At most one timer is pending at a time.
type Debouncer[T any] struct {
	delay   time.Duration
	publish func(T)
	clock   Clock

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	stopped bool
}

// New returns a Debouncer that calls publish with the settled value.
// publish runs on the clock's goroutine, never while the Debouncer's lock
// is held, so it may call Push.
func New[T any](delay time.Duration, publish func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: RealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[T]{
		delay:   delay,
		publish: publish,
		clock:   o.clock,
	}
}

// Push records v as the latest value and restarts the quiet period.
// Any pending value is cancelled. Push after Stop is a no-op.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// A newer Push (or Stop) happened after this timer was armed.
	if gen != d.gen || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.publish(v)
}

// Pending reports whether a value is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending value and disables the Debouncer.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
