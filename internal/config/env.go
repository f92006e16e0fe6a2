package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("TITLEWATCH_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Widget configuration
	if enabled := os.Getenv("TITLEWATCH_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Widget.Enabled = val
		}
	}

	if refresh := os.Getenv("TITLEWATCH_REFRESH_INTERVAL"); refresh != "" {
		if seconds, err := strconv.Atoi(refresh); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Widget.MinRefreshInterval && interval <= cfg.Widget.MaxRefreshInterval {
				cfg.Widget.RefreshInterval = interval
			}
		}
	}

	if mode := os.Getenv("TITLEWATCH_LABEL_MODE"); mode != "" {
		cfg.Widget.LabelMode = mode
	}

	if label := os.Getenv("TITLEWATCH_LABEL"); label != "" {
		cfg.Widget.Label = label
	}

	if keyword := os.Getenv("TITLEWATCH_FILTER_KEYWORD"); keyword != "" {
		cfg.Widget.FilterKeyword = keyword
	}

	if policy := os.Getenv("TITLEWATCH_MATCH_POLICY"); policy != "" {
		cfg.Widget.MatchPolicy = policy
	}

	// Bar configuration
	if tick := os.Getenv("TITLEWATCH_TICK_INTERVAL"); tick != "" {
		if ms, err := strconv.Atoi(tick); err == nil && ms > 0 {
			interval := time.Duration(ms) * time.Millisecond
			if interval >= cfg.Bar.MinTickInterval && interval <= cfg.Bar.MaxTickInterval {
				cfg.Bar.TickInterval = interval
			}
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("TITLEWATCH_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("TITLEWATCH_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	// Report configuration
	if timeZone := os.Getenv("TITLEWATCH_TIMEZONE"); timeZone != "" {
		cfg.Report.TimeZone = timeZone
	}

	// Web configuration
	if webHost := os.Getenv("TITLEWATCH_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("TITLEWATCH_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values, applies the file named by
// TITLEWATCH_CONFIG and then the environment
func New() *Config {
	cfg := Default()
	if path := os.Getenv("TITLEWATCH_CONFIG"); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			log.Printf("Ignoring config file: %v", err)
		}
	}
	LoadFromEnv(cfg)
	return cfg
}
