//go:build !linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"example.com/metronome/base/timebase"
	"example.com/metronome/base/zaplog"
)

// maxSleep bounds a single time.Sleep so that far targets never overflow
// time.Duration.
const maxSleep = 24 * time.Hour

var epoch = time.Now()

func now() timebase.Instant {
	return timebase.InstantFromNsec(int64(time.Since(epoch)))
}

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
	return now(), nil
}

func (c *SystemClock) SleepUntil(t timebase.Instant) error {
	c.log().Debug("sleeping", zap.Stringer("until", t))
	for n := now(); n.Before(t); n = now() {
		d := maxSleep
		if t.Sec-n.Sec < int64(maxSleep/time.Second) {
			d = t.Sub(n)
		}
		time.Sleep(d)
	}
	return nil
}
