package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titlewatch.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[widget]
enable = true
refresh_interval_seconds = 10
label_mode = "icon"
filter_keyword = "Slack"

[bar]
tick_interval_ms = 200
`)

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Widget.RefreshInterval != 10*time.Second {
		t.Errorf("RefreshInterval = %v, want 10s", cfg.Widget.RefreshInterval)
	}
	if cfg.Widget.LabelMode != "icon" {
		t.Errorf("LabelMode = %s, want icon", cfg.Widget.LabelMode)
	}
	if cfg.Widget.FilterKeyword != "Slack" {
		t.Errorf("FilterKeyword = %s, want Slack", cfg.Widget.FilterKeyword)
	}
	if cfg.Bar.TickInterval != 200*time.Millisecond {
		t.Errorf("TickInterval = %v, want 200ms", cfg.Bar.TickInterval)
	}

	// untouched keys keep their defaults
	if cfg.Widget.Label != "DISC" {
		t.Errorf("Label = %s, want default DISC", cfg.Widget.Label)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()

	if err := LoadFile(cfg, filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile() on missing file returned nil error")
	}

	path := writeConfig(t, "[widget\nfilter_keyword = ")
	if err := LoadFile(cfg, path); err == nil {
		t.Error("LoadFile() on malformed file returned nil error")
	}
}

func TestNewReadsConfigFile(t *testing.T) {
	path := writeConfig(t, "[widget]\nfilter_keyword = \"Teams\"\n")
	t.Setenv("TITLEWATCH_CONFIG", path)
	t.Setenv("TITLEWATCH_FILTER_KEYWORD", "")

	if cfg := New(); cfg.Widget.FilterKeyword != "Teams" {
		t.Errorf("FilterKeyword = %s, want Teams", cfg.Widget.FilterKeyword)
	}

	// environment overrides the file
	t.Setenv("TITLEWATCH_FILTER_KEYWORD", "Signal")
	if cfg := New(); cfg.Widget.FilterKeyword != "Signal" {
		t.Errorf("FilterKeyword = %s, want Signal", cfg.Widget.FilterKeyword)
	}
}
