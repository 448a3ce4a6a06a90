package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// WritePidfile records the current process id.
func WritePidfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create pidfile directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// RemovePidfile deletes the pidfile if present.
func RemovePidfile(path string) {
	_ = os.Remove(path)
}

// ReadPidfile returns the recorded pid, or 0 when the file is absent or
// does not hold a positive integer.
func ReadPidfile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// Running reports whether the pidfile points at a live process. A stale
// pidfile left by a crashed daemon reports false.
func Running(path string) (int, bool) {
	pid := ReadPidfile(path)
	if pid == 0 {
		return 0, false
	}
	alive, err := process.PidExists(int32(pid))
	if err != nil || !alive {
		return pid, false
	}
	return pid, true
}
