//go:build linux && (amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x)

package unixutil

import (
	"golang.org/x/sys/unix"

	"example.com/metronome/base/timebase"
)

func TimespecFromInstant(t timebase.Instant) unix.Timespec {
	return unix.Timespec{Sec: t.Sec, Nsec: t.Nsec}
}
