// Package debouncetest provides a manually advanced clock for tests that
// exercise debounced input without sleeping.
package debouncetest

import (
	"sync"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/system/debounce"
)

// Clock is a fake debounce.Clock. Timers only fire inside Advance, on the
// caller's goroutine.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

// NewClock returns a clock positioned at zero.
func NewClock() *Clock {
	return &Clock{}
}

type timer struct {
	c       *Clock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements debounce.Clock.
func (c *Clock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, running every timer that falls due
// in deadline order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *Clock) nextDue(target time.Duration) *timer {
	var best *timer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.at > target {
			continue
		}
		if best == nil || t.at < best.at {
			best = t
		}
	}
	return best
}

// Armed returns the number of timers that are neither stopped nor fired.
func (c *Clock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
