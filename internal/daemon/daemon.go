package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ChildEnv marks a process started by Detach
const ChildEnv = "TITLEWATCH_DAEMON_CHILD"

type Daemon struct {
	pidFile string
}

func New(pidFile string) *Daemon {
	return &Daemon{pidFile: pidFile}
}

// IsChild reports whether this process was started by Detach
func IsChild() bool {
	return os.Getenv(ChildEnv) == "1"
}

func (d *Daemon) WritePID() error {
	return os.WriteFile(d.pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (d *Daemon) ReadPID() (int, error) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}

	return pid, nil
}

func (d *Daemon) RemovePID() error {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning checks the PID file against the process table. A stale PID
// file is removed.
func (d *Daemon) IsRunning() (bool, int, error) {
	pid, err := d.ReadPID()
	if err != nil {
		return false, 0, err
	}

	if pid == 0 {
		return false, 0, nil
	}

	if !processAlive(pid) {
		_ = d.RemovePID()
		return false, 0, nil
	}

	return true, pid, nil
}

func (d *Daemon) Stop() error {
	running, pid, err := d.IsRunning()
	if err != nil {
		return fmt.Errorf("error checking daemon status: %w", err)
	}

	if !running {
		return fmt.Errorf("daemon is not running or PID file is stale")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := terminate(process); err != nil {
		return fmt.Errorf("failed to stop process %d: %w", pid, err)
	}

	if err := d.RemovePID(); err != nil {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}

	return nil
}

// Detach re-executes the current binary in the background with ChildEnv
// set, writing its output to logPath.
func Detach(logPath string) (*os.Process, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}

	procAttr := &os.ProcAttr{
		Env:   append(os.Environ(), ChildEnv+"=1"),
		Files: []*os.File{nil, logFile, logFile},
		Sys:   detachedAttr(),
	}

	process, err := os.StartProcess(exe, os.Args, procAttr)
	if err != nil {
		return nil, fmt.Errorf("failed to start daemon process: %w", err)
	}
	return process, nil
}
