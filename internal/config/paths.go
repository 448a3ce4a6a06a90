package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvStateDir overrides the state directory location when set.
const EnvStateDir = "POMO_HOME"

const stateDirName = ".pomo"

// StateDir returns the per-user state directory (~/.pomo unless POMO_HOME
// is set). The directory holds the socket, pidfile, config and logs.
func StateDir() (string, error) {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, stateDirName), nil
}

// EnsureStateDir creates the state directory if needed and returns it.
func EnsureStateDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the path of the configuration file.
func FilePath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// SocketPath returns the path of the daemon's Unix socket.
func SocketPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pomo.sock"), nil
}

// PidPath returns the path of the daemon's pidfile.
func PidPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pomo.pid"), nil
}

// LogsDir returns the directory launchd log files are written to.
func LogsDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
