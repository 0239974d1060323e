// Package fakeclock provides a manually driven monotonic timer for tests.
package fakeclock

import (
	"sync"
	"time"

	"example.com/metronome/base/timebase"
)

type Clock struct {
	mu        sync.Mutex
	now       timebase.Instant
	lateness  time.Duration
	nowErrs   []error
	sleepErrs []error
	calls     int
	blocked   int
	targets   []timebase.Instant
}

var _ timebase.MonotonicTimer = (*Clock)(nil)

func New(start timebase.Instant) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() (timebase.Instant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.nowErrs) != 0 {
		err := c.nowErrs[0]
		c.nowErrs = c.nowErrs[1:]
		return timebase.Instant{}, err
	}
	return c.now, nil
}

// SleepUntil returns the next queued sleep error, if any, without moving
// the clock. Otherwise it records t and, if t lies in the future, jumps
// the clock to t plus the configured lateness.
func (c *Clock) SleepUntil(t timebase.Instant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if len(c.sleepErrs) != 0 {
		err := c.sleepErrs[0]
		c.sleepErrs = c.sleepErrs[1:]
		return err
	}
	c.targets = append(c.targets, t)
	if c.now.Before(t) {
		c.blocked++
		c.now = timebase.NewInstant(t.Sec, t.Nsec+int64(c.lateness))
	}
	return nil
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = timebase.NewInstant(c.now.Sec, c.now.Nsec+int64(d))
}

// SetLateness makes every blocking sleep overshoot its target by d.
func (c *Clock) SetLateness(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lateness = d
}

func (c *Clock) FailNow(errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nowErrs = append(c.nowErrs, errs...)
}

func (c *Clock) FailSleep(errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleepErrs = append(c.sleepErrs, errs...)
}

// Targets returns the targets of all successful sleeps, in order.
func (c *Clock) Targets() []timebase.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]timebase.Instant(nil), c.targets...)
}

// Calls returns the number of SleepUntil calls, failed ones included.
func (c *Clock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Blocked returns the number of sleeps whose target was in the future.
func (c *Clock) Blocked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked
}
