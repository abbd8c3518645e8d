package testfixtures

import (
	"sync/atomic"
	"time"
)

// Clock is a manually driven time source. Tests move it with Set or Advance
// and hand NowFunc to services expecting a func() time.Time.
type Clock struct {
	current atomic.Int64
}

// NewClock returns a clock pinned to start. A zero start pins the clock to
// ReferenceTime.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	c := &Clock{}
	c.current.Store(start.UnixNano())
	return c
}

// Now reports the instant the clock is pinned to, in UTC.
func (c *Clock) Now() time.Time {
	return time.Unix(0, c.current.Load()).UTC()
}

// NowFunc adapts the clock for injection. A nil clock yields time.Now so
// callers can pass an optional clock straight through.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.current.Store(t.UnixNano())
}

// Advance moves the clock forward by d and returns the new instant.
func (c *Clock) Advance(d time.Duration) time.Time {
	return time.Unix(0, c.current.Add(int64(d))).UTC()
}
