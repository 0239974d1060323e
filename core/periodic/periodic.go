// Package periodic provides a drift-free periodic waiter.
//
// Each wake-up target is the previous target plus a fixed interval, so the
// time spent between two calls to Wait, and any lateness of a single
// wake-up, is never carried into the schedule.
package periodic

import (
	"errors"
	"time"

	"example.com/metronome/base/timebase"
)

// Waiter is owned by a single goroutine. It holds no locks.
type Waiter struct {
	tmr      timebase.MonotonicTimer
	interval timebase.Interval
	anchor   timebase.Instant
}

// New anchors a waiter at the current monotonic time. A zero interval is
// valid; every Wait then returns without blocking.
func New(tmr timebase.MonotonicTimer, interval time.Duration) (*Waiter, error) {
	i, err := timebase.IntervalFromDuration(interval)
	if err != nil {
		return nil, err
	}
	now, err := tmr.Now()
	if err != nil {
		return nil, clockError("new", err)
	}
	return &Waiter{
		tmr:      tmr,
		interval: i,
		anchor:   now,
	}, nil
}

// Reset re-anchors the schedule at the current time, dropping any backlog
// of missed intervals.
func (w *Waiter) Reset() error {
	now, err := w.tmr.Now()
	if err != nil {
		return clockError("reset", err)
	}
	w.anchor = now
	return nil
}

// Wait blocks until one interval past the anchor. On success the anchor
// becomes that target, not the time Wait actually returned. On failure
// the anchor is left unchanged.
func (w *Waiter) Wait() error {
	target := w.anchor.Add(w.interval)
	for {
		err := w.tmr.SleepUntil(target)
		if err == nil {
			break
		}
		if !errors.Is(err, timebase.ErrInterrupted) {
			return &Error{Kind: KindOSFailure, Op: "wait", Err: err}
		}
	}
	w.anchor = target
	return nil
}

func (w *Waiter) Interval() time.Duration {
	return w.interval.Duration()
}

func (w *Waiter) Anchor() timebase.Instant {
	return w.anchor
}

// Next returns the target of the next Wait.
func (w *Waiter) Next() timebase.Instant {
	return w.anchor.Add(w.interval)
}
