package benchmark

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"go.uber.org/zap"

	"example.com/metronome/base/timebase"
	"example.com/metronome/base/timemath"

	"example.com/metronome/core/periodic"
)

type Mode string

const (
	// ModeAbsolute schedules each wake-up from the previous target.
	ModeAbsolute Mode = "absolute"
	// ModeRelative schedules each wake-up from the previous actual wake
	// time, the way a plain sleep loop does.
	ModeRelative Mode = "relative"
)

const maxLatenessMicros = 60_000_000

var errInvalidCount = errors.New("invalid iteration count")

type Options struct {
	Interval time.Duration
	Count    int
	Mode     Mode
}

type Result struct {
	Count int
	// Overflows counts wake-ups later than the histogram range. They are
	// recorded at the top of the range.
	Overflows int
	Elapsed   time.Duration
	Drift     time.Duration
	DriftPPM  float64
	P50       time.Duration
	P99       time.Duration
	Max       time.Duration
}

type scheduler interface {
	start() timebase.Instant
	wait() (timebase.Instant, error)
}

type absoluteScheduler struct {
	w *periodic.Waiter
}

func (s *absoluteScheduler) start() timebase.Instant { return s.w.Anchor() }

func (s *absoluteScheduler) wait() (timebase.Instant, error) {
	target := s.w.Next()
	return target, s.w.Wait()
}

type relativeScheduler struct {
	tmr      timebase.MonotonicTimer
	interval timebase.Interval
	t0       timebase.Instant
}

func (s *relativeScheduler) start() timebase.Instant { return s.t0 }

func (s *relativeScheduler) wait() (timebase.Instant, error) {
	now, err := s.tmr.Now()
	if err != nil {
		return timebase.Instant{}, err
	}
	target := now.Add(s.interval)
	for {
		err = s.tmr.SleepUntil(target)
		if !errors.Is(err, timebase.ErrInterrupted) {
			return target, err
		}
	}
}

func newScheduler(tmr timebase.MonotonicTimer, opts Options) (scheduler, error) {
	switch opts.Mode {
	case ModeAbsolute, "":
		w, err := periodic.New(tmr, opts.Interval)
		if err != nil {
			return nil, err
		}
		return &absoluteScheduler{w: w}, nil
	case ModeRelative:
		i, err := timebase.IntervalFromDuration(opts.Interval)
		if err != nil {
			return nil, err
		}
		t0, err := tmr.Now()
		if err != nil {
			return nil, err
		}
		return &relativeScheduler{tmr: tmr, interval: i, t0: t0}, nil
	default:
		return nil, fmt.Errorf("unknown benchmark mode: %q", opts.Mode)
	}
}

// RunWaiterBenchmark waits opts.Count times and measures how late each
// wake-up is and how far the whole run strays from Count*Interval. If out
// is not nil, the lateness distribution is printed to it in microseconds.
func RunWaiterBenchmark(log *zap.Logger, tmr timebase.MonotonicTimer, opts Options, out io.Writer) (Result, error) {
	if opts.Count <= 0 {
		return Result{}, errInvalidCount
	}
	s, err := newScheduler(tmr, opts)
	if err != nil {
		return Result{}, err
	}
	hg := hdrhistogram.New(0, maxLatenessMicros, 3)
	t0 := s.start()
	var woke timebase.Instant
	overflows := 0
	for j := 0; j < opts.Count; j++ {
		target, err := s.wait()
		if err != nil {
			return Result{}, err
		}
		woke, err = tmr.Now()
		if err != nil {
			return Result{}, err
		}
		lateness := woke.Sub(target)
		if lateness < 0 {
			lateness = 0
		}
		v := lateness.Microseconds()
		if v > maxLatenessMicros {
			v = maxLatenessMicros
			overflows++
		}
		err = hg.RecordValue(v)
		if err != nil {
			return Result{}, fmt.Errorf("failed to record histogram value: %w", err)
		}
	}
	elapsed := woke.Sub(t0)
	drift := elapsed - time.Duration(opts.Count)*opts.Interval
	r := Result{
		Count:     opts.Count,
		Overflows: overflows,
		Elapsed:   elapsed,
		Drift:     drift,
		DriftPPM:  timemath.PPM(drift, elapsed),
		P50:       time.Duration(hg.ValueAtQuantile(50)) * time.Microsecond,
		P99:       time.Duration(hg.ValueAtQuantile(99)) * time.Microsecond,
		Max:       time.Duration(hg.Max()) * time.Microsecond,
	}
	if out != nil {
		_, err = hg.PercentilesPrint(out, 1, 1.0)
		if err != nil {
			return Result{}, fmt.Errorf("failed to print histogram percentiles: %w", err)
		}
	}
	log.Info("benchmark finished",
		zap.String("mode", string(opts.Mode)),
		zap.Int("count", r.Count),
		zap.Int("overflows", r.Overflows),
		zap.Duration("elapsed", r.Elapsed),
		zap.Duration("drift", r.Drift),
		zap.Float64("driftPPM", r.DriftPPM),
		zap.Duration("p50", r.P50),
		zap.Duration("p99", r.P99),
		zap.Duration("max", r.Max),
	)
	if timemath.Abs(r.Drift) > opts.Interval && opts.Interval > 0 {
		log.Warn("schedule drifted by more than one interval", zap.Duration("drift", r.Drift))
	}
	return r, nil
}
