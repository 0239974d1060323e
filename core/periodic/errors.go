package periodic

import (
	"errors"
	"fmt"

	"example.com/metronome/base/timebase"
)

type ErrorKind int

const (
	// KindOSFailure covers every clock or sleep failure other than a
	// missing clock. The underlying error is kept for diagnostics.
	KindOSFailure ErrorKind = iota
	// KindUnsupported means the monotonic clock does not exist on this
	// platform.
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindOSFailure:
		return "os failure"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("periodic: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func IsUnsupported(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnsupported
}

func clockError(op string, err error) error {
	kind := KindOSFailure
	if errors.Is(err, timebase.ErrUnsupported) {
		kind = KindUnsupported
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
