//go:build linux && (386 || arm || mips || mipsle)

package unixutil

import (
	"math"

	"golang.org/x/sys/unix"

	"example.com/metronome/base/timebase"
)

// TimespecFromInstant saturates seconds beyond the 32-bit tv_sec range;
// such a target lies decades past any reachable monotonic reading.
func TimespecFromInstant(t timebase.Instant) unix.Timespec {
	sec := t.Sec
	if sec > math.MaxInt32 {
		sec = math.MaxInt32
	}
	return unix.Timespec{Sec: int32(sec), Nsec: int32(t.Nsec)}
}
