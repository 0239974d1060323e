package zaplog_test

import (
	"testing"

	"go.uber.org/zap"

	"example.com/metronome/base/zaplog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{verbose: true, debug: true},
		{verbose: false, debug: false},
	}

	for _, tt := range tests {
		l, err := zaplog.New(tt.verbose)
		if err != nil {
			t.Fatalf("zaplog.New(%v) failed: %v", tt.verbose, err)
		}
		if got := l.Core().Enabled(zap.DebugLevel); got != tt.debug {
			t.Errorf("zaplog.New(%v): debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
	}
}

func TestSetLogger(t *testing.T) {
	if zaplog.Logger() == nil {
		t.Fatal("zaplog.Logger() = nil before SetLogger")
	}
	l := zap.NewExample()
	zaplog.SetLogger(l)
	if zaplog.Logger() != l {
		t.Error("zaplog.Logger() did not return the logger passed to SetLogger")
	}
}
