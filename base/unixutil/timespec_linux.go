package unixutil

import (
	"golang.org/x/sys/unix"

	"example.com/metronome/base/timebase"
)

// InstantFromTimespec normalizes ts. The kernel never reports a negative
// tv_nsec, but a hand-built Timespec may carry one.
func InstantFromTimespec(ts unix.Timespec) timebase.Instant {
	sec, nsec := ts.Unix()
	return timebase.NewInstant(sec, nsec)
}
