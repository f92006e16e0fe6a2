package config_test

import (
	"fmt"
	"time"

	"titlewatch/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Refresh Interval:", cfg.Widget.RefreshInterval)
	fmt.Println("Filter Keyword:", cfg.Widget.FilterKeyword)
	fmt.Println("Label Mode:", cfg.Widget.LabelMode)
	// Output:
	// Refresh Interval: 2s
	// Filter Keyword: Discord
	// Label Mode: icon_and_text
}

// Example of setting the refresh interval with validation
func ExampleConfig_SetRefreshInterval() {
	cfg := config.Default()

	// Valid interval
	if err := cfg.SetRefreshInterval(5 * time.Second); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Refresh interval set to:", cfg.Widget.RefreshInterval)
	}

	// Invalid interval (too low)
	if err := cfg.SetRefreshInterval(100 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Refresh interval set to: 5s
	// Error: refresh interval cannot be less than 1s
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	// Output:
	// Configuration is valid
}
