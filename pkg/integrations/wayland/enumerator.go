package wayland

import (
	"os/exec"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Enumerator implements window.Enumerator through compositor IPC
type Enumerator struct {
	compositor  string
	hasSwaymsg  bool
	hasHyprctl  bool
	runCommand  func(name string, args ...string) ([]byte, error)
	processFunc func(name string) bool
}

// NewEnumerator creates a new Wayland enumerator
func NewEnumerator() *Enumerator {
	e := &Enumerator{
		runCommand:  runCommand,
		processFunc: processRunning,
	}
	e.hasSwaymsg = commandExists("swaymsg")
	e.hasHyprctl = commandExists("hyprctl")
	e.detectCompositor()
	return e
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func processRunning(name string) bool {
	return exec.Command("pgrep", "-x", name).Run() == nil
}

// detectCompositor finds a compositor that can list its windows
func (e *Enumerator) detectCompositor() {
	compositors := []struct {
		process string
		name    string
	}{
		{"sway", "sway"},
		{"Hyprland", "hyprland"},
	}

	for _, c := range compositors {
		if e.processFunc(c.process) {
			e.compositor = c.name
			return
		}
	}

	e.compositor = "unknown"
}

// IsAvailable checks if the running compositor exposes a window list
func (e *Enumerator) IsAvailable() bool {
	switch e.compositor {
	case "sway":
		return e.hasSwaymsg
	case "hyprland":
		return e.hasHyprctl
	default:
		return false
	}
}

// GetDisplayServer returns "wayland"
func (e *Enumerator) GetDisplayServer() string {
	return "wayland"
}

// VisitTitles lists the compositor's toplevels
func (e *Enumerator) VisitTitles(visit func(title string) bool) error {
	switch e.compositor {
	case "sway":
		output, err := e.runCommand("swaymsg", "-t", "get_tree", "-r")
		if err != nil {
			return errors.Wrap(err, "failed to execute swaymsg")
		}
		return visitSwayTree(output, visit)
	case "hyprland":
		output, err := e.runCommand("hyprctl", "clients", "-j")
		if err != nil {
			return errors.Wrap(err, "failed to execute hyprctl")
		}
		return visitHyprlandClients(output, visit)
	default:
		return errors.Errorf("unsupported wayland compositor: %s", e.compositor)
	}
}

// Close cleans up resources
func (e *Enumerator) Close() error {
	return nil
}

// visitSwayTree walks a sway layout tree. Views are the nodes that carry a
// pid; workspaces and outputs do not.
func visitSwayTree(output []byte, visit func(title string) bool) error {
	if !gjson.ValidBytes(output) {
		return errors.New("invalid sway tree json")
	}

	var walk func(node gjson.Result) bool
	walk = func(node gjson.Result) bool {
		if node.Get("pid").Int() > 0 {
			if title := node.Get("name").String(); title != "" {
				if !visit(title) {
					return false
				}
			}
		}

		for _, key := range []string{"nodes", "floating_nodes"} {
			cont := true
			node.Get(key).ForEach(func(_, child gjson.Result) bool {
				cont = walk(child)
				return cont
			})
			if !cont {
				return false
			}
		}
		return true
	}

	walk(gjson.ParseBytes(output))
	return nil
}

// visitHyprlandClients walks the `hyprctl clients -j` array
func visitHyprlandClients(output []byte, visit func(title string) bool) error {
	if !gjson.ValidBytes(output) {
		return errors.New("invalid hyprctl clients json")
	}

	result := gjson.ParseBytes(output)
	if !result.IsArray() {
		return errors.New("hyprctl clients output is not an array")
	}

	result.ForEach(func(_, client gjson.Result) bool {
		title := client.Get("title").String()
		if title == "" {
			return true
		}
		return visit(title)
	})
	return nil
}
