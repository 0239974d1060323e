package timebase

import (
	"errors"
)

var (
	// ErrUnsupported reports that the requested clock does not exist on
	// this platform.
	ErrUnsupported = errors.New("clock not supported")

	// ErrInterrupted reports that a blocking wait returned early because
	// of signal delivery. The wait has to be reissued with the same target.
	ErrInterrupted = errors.New("wait interrupted")
)

type MonotonicClock interface {
	Now() (Instant, error)
}

// AbsoluteSleeper blocks until a monotonic clock reaches an instant. A
// single call may return ErrInterrupted (possibly wrapped) before the
// target is reached.
type AbsoluteSleeper interface {
	SleepUntil(t Instant) error
}

type MonotonicTimer interface {
	MonotonicClock
	AbsoluteSleeper
}
