// Drift-free periodic timer service

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmcloughlin/profile"
	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"

	"example.com/metronome/base/zaplog"

	"example.com/metronome/benchmark"

	"example.com/metronome/core/metronome"

	"example.com/metronome/driver/clock"
)

type svcConfig struct {
	Interval       string `toml:"interval,omitempty"`
	MaxBacklog     string `toml:"max_backlog,omitempty"`
	MetricsAddress string `toml:"metrics_address,omitempty"`
}

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	var err error
	log, err = zaplog.New(verbose)
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) (svcConfig, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return svcConfig{}, err
	}
	var cfg svcConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return svcConfig{}, err
	}
	return cfg, nil
}

func metronomeConfig(cfg svcConfig) (metronome.Config, error) {
	if cfg.Interval == "" {
		return metronome.Config{}, errors.New("missing interval")
	}
	interval, err := time.ParseDuration(cfg.Interval)
	if err != nil {
		return metronome.Config{}, fmt.Errorf("invalid interval: %w", err)
	}
	if interval < 0 {
		return metronome.Config{}, fmt.Errorf("invalid interval: %v", interval)
	}
	var maxBacklog time.Duration
	if cfg.MaxBacklog != "" {
		maxBacklog, err = time.ParseDuration(cfg.MaxBacklog)
		if err != nil {
			return metronome.Config{}, fmt.Errorf("invalid max_backlog: %w", err)
		}
		if maxBacklog < 0 {
			return metronome.Config{}, fmt.Errorf("invalid max_backlog: %v", maxBacklog)
		}
	}
	return metronome.Config{
		Interval:   interval,
		MaxBacklog: maxBacklog,
	}, nil
}

func runMetronome(configFile string) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	mcfg, err := metronomeConfig(cfg)
	if err != nil {
		log.Fatal("unexpected configuration", zap.Error(err))
	}
	if cfg.MetricsAddress != "" {
		go runMonitor(log, cfg.MetricsAddress)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := &clock.SystemClock{Log: log}
	err = metronome.Run(ctx, log, clk, mcfg, func(_ context.Context, tick metronome.Tick) error {
		log.Info("tick",
			zap.Uint64("seq", tick.Seq),
			zap.Stringer("target", tick.Target),
			zap.Duration("lateness", tick.Lateness),
		)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("metronome failed", zap.Error(err))
	}
	log.Info("metronome stopped")
}

func runBenchmark(opts benchmark.Options, cpuProfile bool) {
	if cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	clk := &clock.SystemClock{Log: log}
	_, err := benchmark.RunWaiterBenchmark(log, clk, opts, os.Stdout)
	if err != nil {
		log.Fatal("benchmark failed", zap.Error(err))
	}
}

func exitWithUsage() {
	fmt.Println("usage: metronome run -config <file> [-verbose]")
	fmt.Println("       metronome benchmark [-interval d] [-count n] [-mode absolute|relative] [-cpuprofile] [-verbose]")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		interval   time.Duration
		count      int
		mode       string
		cpuProfile bool
	)

	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.DurationVar(&interval, "interval", 10*time.Millisecond, "Wait interval")
	benchmarkFlags.IntVar(&count, "count", 1000, "Number of waits")
	benchmarkFlags.StringVar(&mode, "mode", string(benchmark.ModeAbsolute), "Scheduling mode")
	benchmarkFlags.BoolVar(&cpuProfile, "cpuprofile", false, "Write a CPU profile")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runMetronome(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if count <= 0 || interval < 0 {
			exitWithUsage()
		}
		if mode != string(benchmark.ModeAbsolute) && mode != string(benchmark.ModeRelative) {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(benchmark.Options{
			Interval: interval,
			Count:    count,
			Mode:     benchmark.Mode(mode),
		}, cpuProfile)
	default:
		exitWithUsage()
	}
}
