//go:build linux

package clock

import (
	"fmt"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/metronome/base/timebase"
	"example.com/metronome/base/unixutil"
	"example.com/metronome/base/zaplog"
)

// SystemClock reads CLOCK_MONOTONIC and sleeps on it with absolute
// deadlines.
type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.MonotonicTimer = (*SystemClock)(nil)

func (c *SystemClock) log() *zap.Logger {
	if c.Log == nil {
		return zaplog.Logger()
	}
	return c.Log
}

func (c *SystemClock) Now() (timebase.Instant, error) {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		if err == unix.EINVAL {
			return timebase.Instant{}, fmt.Errorf("%w: CLOCK_MONOTONIC is not supported", timebase.ErrUnsupported)
		}
		return timebase.Instant{}, fmt.Errorf("unix.ClockGettime failed: %w", err)
	}
	return unixutil.InstantFromTimespec(ts), nil
}

// SleepUntil makes a single clock_nanosleep call. Signal delivery is
// reported as timebase.ErrInterrupted; reissuing the call is up to the
// caller.
func (c *SystemClock) SleepUntil(t timebase.Instant) error {
	c.log().Debug("sleeping", zap.Stringer("until", t))
	ts := unixutil.TimespecFromInstant(t)
	err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, unix.TIMER_ABSTIME, &ts, nil /* remain */)
	if err != nil {
		if err == unix.EINTR {
			return fmt.Errorf("unix.ClockNanosleep: %w", timebase.ErrInterrupted)
		}
		return fmt.Errorf("unix.ClockNanosleep failed: %w", err)
	}
	return nil
}
