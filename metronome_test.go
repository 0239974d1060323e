package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "metronome.toml")
	err := os.WriteFile(p, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("testdata", "metronome.toml"))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := svcConfig{
		Interval:       "500ms",
		MaxBacklog:     "2s",
		MetricsAddress: "127.0.0.1:8080",
	}
	if cfg != want {
		t.Errorf("loadConfig = %+v, want %+v", cfg, want)
	}

	mcfg, err := metronomeConfig(cfg)
	if err != nil {
		t.Fatalf("metronomeConfig failed: %v", err)
	}
	if mcfg.Interval != 500*time.Millisecond || mcfg.MaxBacklog != 2*time.Second {
		t.Errorf("metronomeConfig = %+v", mcfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown field", "interval = \"1s\"\nperiod = \"1s\"\n"},
		{"Malformed", "interval = \n"},
		{"Wrong type", "interval = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Errorf("loadConfig(%q) succeeded, want error", tt.content)
			}
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("loadConfig of a missing file succeeded")
	}
}

func TestMetronomeConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     svcConfig
		wantErr bool
	}{
		{"Minimal", svcConfig{Interval: "1s"}, false},
		{"Zero interval", svcConfig{Interval: "0s"}, false},
		{"Missing interval", svcConfig{}, true},
		{"Bad interval", svcConfig{Interval: "soon"}, true},
		{"Negative interval", svcConfig{Interval: "-1s"}, true},
		{"Bad backlog", svcConfig{Interval: "1s", MaxBacklog: "later"}, true},
		{"Negative backlog", svcConfig{Interval: "1s", MaxBacklog: "-1s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metronomeConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("metronomeConfig(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
			}
		})
	}
}
