package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"titlewatch/internal/scanner"
	"titlewatch/internal/widget"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Widget configuration
	Widget WidgetConfig

	// Bar driver configuration
	Bar BarConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Report configuration
	Report ReportConfig

	// Web server configuration
	Web WebConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// WidgetConfig holds the notification widget settings
type WidgetConfig struct {
	Enabled            bool
	RefreshInterval    time.Duration // Minimum time between window scans
	MinRefreshInterval time.Duration
	MaxRefreshInterval time.Duration
	LabelMode          string // none, icon, text, icon_and_text
	Label              string // Fixed text shown before the count
	FilterKeyword      string // Substring identifying the application window
	MatchPolicy        string // first or last
}

// BarConfig holds render loop configuration
type BarConfig struct {
	TickInterval    time.Duration // How often the widget output is rendered
	MinTickInterval time.Duration
	MaxTickInterval time.Duration
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Empty means log to stderr
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	TimeZone string
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	defaults := widget.DefaultConfig()

	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/titlewatch/titlewatch.db
		},
		Widget: WidgetConfig{
			Enabled:            defaults.Enabled,
			RefreshInterval:    defaults.RefreshInterval,
			MinRefreshInterval: 1 * time.Second,
			MaxRefreshInterval: 3600 * time.Second,
			LabelMode:          defaults.LabelMode.String(),
			Label:              defaults.Label,
			FilterKeyword:      defaults.FilterKeyword,
			MatchPolicy:        scanner.LastMatch.String(),
		},
		Bar: BarConfig{
			TickInterval:    500 * time.Millisecond,
			MinTickInterval: 50 * time.Millisecond,
			MaxTickInterval: 10 * time.Second,
		},
		Daemon: DaemonConfig{
			PIDFile: defaultPIDFile(),
		},
		Report: ReportConfig{
			TimeZone: "Local",
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 11000 + os.Getuid()%1000,
		},
	}
}

func defaultPIDFile() string {
	return fmt.Sprintf("%s/titlewatch-%d.pid", strings.TrimRight(os.TempDir(), `/\`), os.Getuid())
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Widget.RefreshInterval < c.Widget.MinRefreshInterval {
		return fmt.Errorf("refresh interval (%v) cannot be less than minimum (%v)",
			c.Widget.RefreshInterval, c.Widget.MinRefreshInterval)
	}

	if c.Widget.RefreshInterval > c.Widget.MaxRefreshInterval {
		return fmt.Errorf("refresh interval (%v) cannot be greater than maximum (%v)",
			c.Widget.RefreshInterval, c.Widget.MaxRefreshInterval)
	}

	if c.Widget.FilterKeyword == "" {
		return fmt.Errorf("filter keyword cannot be empty")
	}

	if _, err := widget.ParseLabelMode(c.Widget.LabelMode); err != nil {
		return err
	}

	if _, err := scanner.ParseMatchPolicy(c.Widget.MatchPolicy); err != nil {
		return err
	}

	if c.Bar.TickInterval < c.Bar.MinTickInterval || c.Bar.TickInterval > c.Bar.MaxTickInterval {
		return fmt.Errorf("tick interval (%v) must be between %v and %v",
			c.Bar.TickInterval, c.Bar.MinTickInterval, c.Bar.MaxTickInterval)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetRefreshInterval sets the widget refresh interval with validation
func (c *Config) SetRefreshInterval(interval time.Duration) error {
	if interval < c.Widget.MinRefreshInterval {
		return fmt.Errorf("refresh interval cannot be less than %v", c.Widget.MinRefreshInterval)
	}
	if interval > c.Widget.MaxRefreshInterval {
		return fmt.Errorf("refresh interval cannot be greater than %v", c.Widget.MaxRefreshInterval)
	}
	c.Widget.RefreshInterval = interval
	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// WidgetSettings converts the widget settings. Call Validate first; invalid
// enum values fall back to their defaults.
func (c *Config) WidgetSettings() widget.Config {
	mode, _ := widget.ParseLabelMode(c.Widget.LabelMode)
	return widget.Config{
		Enabled:         c.Widget.Enabled,
		RefreshInterval: c.Widget.RefreshInterval,
		LabelMode:       mode,
		FilterKeyword:   c.Widget.FilterKeyword,
		Label:           c.Widget.Label,
	}
}

// ScanPolicy returns the configured match policy
func (c *Config) ScanPolicy() scanner.MatchPolicy {
	policy, _ := scanner.ParseMatchPolicy(c.Widget.MatchPolicy)
	return policy
}

// Location resolves the report time zone
func (c *Config) Location() *time.Location {
	if c.Report.TimeZone == "" || c.Report.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Report.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Widget:
    Enabled: %v
    Refresh Interval: %v
    Label Mode: %s
    Label: %s
    Filter Keyword: %s
    Match Policy: %s
  Bar:
    Tick Interval: %v
  Daemon:
    PID File: %s
    Log File: %s
  Report:
    Time Zone: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Widget.Enabled,
		c.Widget.RefreshInterval,
		c.Widget.LabelMode,
		c.Widget.Label,
		c.Widget.FilterKeyword,
		c.Widget.MatchPolicy,
		c.Bar.TickInterval,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Report.TimeZone,
		c.Web.Host,
		c.Web.Port,
	)
}
