package timemath

import (
	"math"
	"time"
)

func Seconds(d time.Duration) float64 {
	return float64(d) / float64(time.Second)
}

func Abs(d time.Duration) time.Duration {
	switch {
	case d == math.MinInt64:
		panic("unexpected duration value")
	case d < 0:
		return -d
	default:
		return d
	}
}

// PPM returns the rate of drift over elapsed in parts per million.
func PPM(drift, elapsed time.Duration) float64 {
	if elapsed == 0 {
		return 0
	}
	return Seconds(drift) / Seconds(elapsed) * 1e6
}
