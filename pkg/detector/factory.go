package detector

import (
	"fmt"
	"os"
	"runtime"

	"titlewatch/pkg/integrations/wayland"
	"titlewatch/pkg/integrations/win32"
	"titlewatch/pkg/integrations/x11"
	"titlewatch/pkg/window"
)

// New returns the window enumerator for the current session
func New() (window.Enumerator, error) {
	switch DetectDisplayServer() {
	case "win32":
		e, err := win32.NewEnumerator()
		if err != nil {
			return nil, err
		}
		return e, nil

	case "wayland":
		if e := wayland.NewEnumerator(); e.IsAvailable() {
			return e, nil
		}
		// XWayland still lists X clients
		if os.Getenv("DISPLAY") != "" {
			return newX11()
		}
		return nil, fmt.Errorf("no supported wayland compositor found (sway or hyprland required)")

	case "x11":
		return newX11()

	default:
		return nil, fmt.Errorf("no display server detected")
	}
}

func newX11() (window.Enumerator, error) {
	e, err := x11.NewEnumerator()
	if err != nil {
		return nil, err
	}
	return e, nil
}

func DetectDisplayServer() string {
	if runtime.GOOS == "windows" {
		return "win32"
	}

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
