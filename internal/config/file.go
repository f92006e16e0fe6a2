package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the optional TOML file. Missing keys keep their
// current values.
type fileConfig struct {
	Database struct {
		Path *string `toml:"path"`
	} `toml:"database"`
	Widget struct {
		Enable                 *bool   `toml:"enable"`
		RefreshIntervalSeconds *uint64 `toml:"refresh_interval_seconds"`
		LabelMode              *string `toml:"label_mode"`
		Label                  *string `toml:"label"`
		FilterKeyword          *string `toml:"filter_keyword"`
		MatchPolicy            *string `toml:"match_policy"`
	} `toml:"widget"`
	Bar struct {
		TickIntervalMillis *uint64 `toml:"tick_interval_ms"`
	} `toml:"bar"`
	Web struct {
		Host *string `toml:"host"`
		Port *int    `toml:"port"`
	} `toml:"web"`
}

// LoadFile applies a TOML config file on top of cfg
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Database.Path != nil {
		cfg.Database.Path = *fc.Database.Path
	}
	if fc.Widget.Enable != nil {
		cfg.Widget.Enabled = *fc.Widget.Enable
	}
	if fc.Widget.RefreshIntervalSeconds != nil {
		cfg.Widget.RefreshInterval = time.Duration(*fc.Widget.RefreshIntervalSeconds) * time.Second
	}
	if fc.Widget.LabelMode != nil {
		cfg.Widget.LabelMode = *fc.Widget.LabelMode
	}
	if fc.Widget.Label != nil {
		cfg.Widget.Label = *fc.Widget.Label
	}
	if fc.Widget.FilterKeyword != nil {
		cfg.Widget.FilterKeyword = *fc.Widget.FilterKeyword
	}
	if fc.Widget.MatchPolicy != nil {
		cfg.Widget.MatchPolicy = *fc.Widget.MatchPolicy
	}
	if fc.Bar.TickIntervalMillis != nil {
		cfg.Bar.TickInterval = time.Duration(*fc.Bar.TickIntervalMillis) * time.Millisecond
	}
	if fc.Web.Host != nil {
		cfg.Web.Host = *fc.Web.Host
	}
	if fc.Web.Port != nil {
		cfg.Web.Port = *fc.Web.Port
	}

	return nil
}
