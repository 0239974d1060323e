package timemath_test

import (
	"math"
	"testing"
	"time"

	"example.com/metronome/base/timemath"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     float64
	}{
		{1500 * time.Millisecond, 1.5},
		{time.Second, 1},
		{0, 0},
		{-time.Second, -1},
		{-1500 * time.Millisecond, -1.5},
	}

	for _, tt := range tests {
		got := timemath.Seconds(tt.duration)
		if got != tt.want {
			t.Errorf("timemath.Seconds(%v) = %v, want %v", tt.duration, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     time.Duration
	}{
		{time.Second, time.Second},
		{-time.Second, time.Second},
		{0, 0},
	}

	for _, tt := range tests {
		got := timemath.Abs(tt.duration)
		if got != tt.want {
			t.Errorf("timemath.Abs(%v) = %v, want %v", tt.duration, got, tt.want)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("timemath.Abs(%v), did not panic", math.MinInt64)
		}
	}()
	timemath.Abs(math.MinInt64)
}

func TestPPM(t *testing.T) {
	tests := []struct {
		drift, elapsed time.Duration
		want           float64
	}{
		{time.Millisecond, time.Second, 1000},
		{-time.Microsecond, time.Second, -1},
		{0, time.Second, 0},
		{time.Second, 0, 0},
	}

	for _, tt := range tests {
		got := timemath.PPM(tt.drift, tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("timemath.PPM(%v, %v) = %v, want %v", tt.drift, tt.elapsed, got, tt.want)
		}
	}
}
