// Package metronome runs a unit of work once per interval on a drift-free
// schedule.
package metronome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go.uber.org/zap"

	"example.com/metronome/base/metrics"
	"example.com/metronome/base/timebase"
	"example.com/metronome/base/timemath"

	"example.com/metronome/core/periodic"
)

var errInvalidBacklog = errors.New("invalid maximum backlog")

type Config struct {
	Interval time.Duration
	// MaxBacklog is the lateness beyond which the schedule is re-anchored
	// at the current time instead of catching up on missed ticks. Zero
	// disables resynchronization.
	MaxBacklog time.Duration
	// Registerer receives the metronome metrics. Nil selects
	// prometheus.DefaultRegisterer. Collectors already registered by an
	// earlier Run are reused.
	Registerer prometheus.Registerer
}

type Tick struct {
	Seq      uint64
	Target   timebase.Instant
	Woke     timebase.Instant
	Lateness time.Duration
}

type Func func(ctx context.Context, tick Tick) error

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("metronome: failed to register metrics: %w", err)
	}
	return c, nil
}

// Run calls fn once per tick until ctx is done or fn, the clock, or the
// waiter fails. ctx is only checked between waits; a wait in progress
// always runs to its target.
func Run(ctx context.Context, log *zap.Logger, tmr timebase.MonotonicTimer, cfg Config, fn Func) error {
	if cfg.MaxBacklog < 0 {
		return errInvalidBacklog
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ticksCounter, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: metrics.MetronomeTicksN,
		Help: metrics.MetronomeTicksH,
	}))
	if err != nil {
		return err
	}
	resetsCounter, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: metrics.MetronomeResetsN,
		Help: metrics.MetronomeResetsH,
	}))
	if err != nil {
		return err
	}
	latenessGauge, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: metrics.MetronomeLatenessN,
		Help: metrics.MetronomeLatenessH,
	}))
	if err != nil {
		return err
	}

	w, err := periodic.New(tmr, cfg.Interval)
	if err != nil {
		return err
	}
	log.Info("metronome started",
		zap.Duration("interval", w.Interval()),
		zap.Duration("maxBacklog", cfg.MaxBacklog),
		zap.Stringer("anchor", w.Anchor()),
	)
	for seq := uint64(1); ; seq++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := w.Next()
		if err := w.Wait(); err != nil {
			return err
		}
		woke, err := tmr.Now()
		if err != nil {
			return fmt.Errorf("metronome: failed to read clock: %w", err)
		}
		lateness := woke.Sub(target)
		ticksCounter.Inc()
		latenessGauge.Set(timemath.Seconds(lateness))
		log.Debug("tick",
			zap.Uint64("seq", seq),
			zap.Stringer("target", target),
			zap.Duration("lateness", lateness),
		)
		if cfg.MaxBacklog > 0 && lateness > cfg.MaxBacklog {
			log.Warn("maximum backlog exceeded, resynchronizing schedule",
				zap.Uint64("seq", seq),
				zap.Duration("lateness", lateness),
			)
			if err := w.Reset(); err != nil {
				return err
			}
			resetsCounter.Inc()
		}
		err = fn(ctx, Tick{
			Seq:      seq,
			Target:   target,
			Woke:     woke,
			Lateness: lateness,
		})
		if err != nil {
			return err
		}
	}
}
