package timebase

import (
	"errors"
	"fmt"
	"time"
)

const nsecPerSec = 1_000_000_000

var ErrNegativeInterval = errors.New("negative interval")

// Instant is a reading of a monotonic clock. Its epoch is arbitrary; only
// differences between instants of the same clock are meaningful.
// Nsec is always in [0, 1e9).
type Instant struct {
	Sec  int64
	Nsec int64
}

// Interval is a non-negative duration split into whole seconds and a
// nanosecond remainder in [0, 1e9).
type Interval struct {
	Sec  int64
	Nsec int64
}

// NewInstant normalizes nsec into [0, 1e9), carrying into or borrowing
// from sec. Seconds are never scaled to nanoseconds, so any sec is safe.
func NewInstant(sec, nsec int64) Instant {
	sec += nsec / nsecPerSec
	nsec = nsec % nsecPerSec
	if nsec < 0 {
		sec -= 1
		nsec += nsecPerSec
	}
	return Instant{Sec: sec, Nsec: nsec}
}

func InstantFromNsec(nsec int64) Instant {
	return NewInstant(0, nsec)
}

// Add returns t advanced by i. Both operands must be normalized; a single
// carry then suffices to keep the result normalized.
func (t Instant) Add(i Interval) Instant {
	sec := t.Sec + i.Sec
	nsec := t.Nsec + i.Nsec
	if nsec >= nsecPerSec {
		sec += 1
		nsec -= nsecPerSec
	}
	return Instant{Sec: sec, Nsec: nsec}
}

func (t Instant) Sub(u Instant) time.Duration {
	return time.Duration(t.Sec-u.Sec)*time.Second + time.Duration(t.Nsec-u.Nsec)
}

func (t Instant) Compare(u Instant) int {
	switch {
	case t.Sec < u.Sec:
		return -1
	case t.Sec > u.Sec:
		return 1
	case t.Nsec < u.Nsec:
		return -1
	case t.Nsec > u.Nsec:
		return 1
	default:
		return 0
	}
}

func (t Instant) Before(u Instant) bool { return t.Compare(u) < 0 }

func (t Instant) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}

// IntervalFromDuration splits d into seconds, truncated toward zero, and
// the remaining nanoseconds.
func IntervalFromDuration(d time.Duration) (Interval, error) {
	if d < 0 {
		return Interval{}, fmt.Errorf("%w: %v", ErrNegativeInterval, d)
	}
	sec := d / time.Second
	return Interval{
		Sec:  int64(sec),
		Nsec: int64(d - sec*time.Second),
	}, nil
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.Sec)*time.Second + time.Duration(i.Nsec)
}

func (i Interval) String() string {
	return i.Duration().String()
}
