package periodic_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"example.com/metronome/core/periodic"
	"example.com/metronome/driver/clock"
)

func TestWaitWithSystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps on the system clock")
	}
	clk := &clock.SystemClock{Log: zap.NewNop()}
	w, err := periodic.New(clk, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("periodic.New failed: %v", err)
	}
	start := w.Anchor()
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	end, err := clk.Now()
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	elapsed := end.Sub(start)
	if elapsed < 100*time.Millisecond {
		t.Errorf("two waits took %v, want at least 100ms", elapsed)
	}
	// Re-anchoring on the wake time instead of the target would push the
	// second wake-up past 130ms.
	if elapsed >= 130*time.Millisecond {
		t.Errorf("two waits took %v, work between waits leaked into the schedule", elapsed)
	}
	if d := w.Anchor().Sub(start); d != 100*time.Millisecond {
		t.Errorf("anchor advanced by %v, want 100ms", d)
	}
}
