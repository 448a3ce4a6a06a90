// Package launchagent manages the macOS LaunchAgent that keeps the pomo
// daemon running across logins.
package launchagent

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/pkg/shell"
)

// Label identifies the agent to launchd.
const Label = "com.pomokit.pomo"

// Status describes the installed state of the agent.
type Status struct {
	PlistPath string
	Installed bool
	Loaded    bool
	PID       int
}

// PlistPath returns the agent's plist location under the user's
// LaunchAgents directory.
func PlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist"), nil
}

// Install writes the agent plist pointing at execPath and loads it into
// launchd. An already-loaded agent is reloaded.
func Install(execPath string) error {
	if !filepath.IsAbs(execPath) {
		return fmt.Errorf("executable path must be absolute, got %s", execPath)
	}

	plistPath, err := PlistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0o755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents dir: %w", err)
	}

	logsDir, err := config.LogsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logsDir, 0o700); err != nil {
		return fmt.Errorf("failed to create logs dir: %w", err)
	}

	content := buildPlist(execPath, logsDir)
	if err := os.WriteFile(plistPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write plist: %w", err)
	}

	// Unload first so a re-install picks up the new plist.
	_, _ = shell.Run("launchctl", "unload", plistPath)

	result, err := shell.Run("launchctl", "load", plistPath)
	if err != nil {
		return fmt.Errorf("failed to load launch agent: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("launchctl load failed: %s", result.Stderr)
	}
	return nil
}

// Uninstall unloads the agent and removes its plist.
func Uninstall() error {
	plistPath, err := PlistPath()
	if err != nil {
		return err
	}
	if !shell.FileExists(plistPath) {
		return fmt.Errorf("launch agent is not installed")
	}

	_, _ = shell.Run("launchctl", "unload", plistPath)

	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove plist: %w", err)
	}
	return nil
}

// GetStatus reports whether the agent is installed and loaded. The PID
// is non-zero only while launchd has the daemon running.
func GetStatus() (Status, error) {
	plistPath, err := PlistPath()
	if err != nil {
		return Status{}, err
	}

	status := Status{
		PlistPath: plistPath,
		Installed: shell.FileExists(plistPath),
	}

	result, err := shell.Run("launchctl", "list", Label)
	if err != nil {
		// launchctl itself is missing; report what the filesystem knows.
		return status, nil
	}
	if result.ExitCode == 0 {
		status.Loaded = true
		status.PID = parseListPID(result.Stdout)
	}
	return status, nil
}

// parseListPID extracts the PID entry from `launchctl list <label>`
// output, which prints a plist-style dictionary.
func parseListPID(out string) int {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `"PID"`) {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		value := strings.TrimSuffix(strings.TrimSpace(parts[1]), ";")
		pid, err := strconv.Atoi(value)
		if err == nil && pid > 0 {
			return pid
		}
	}
	return 0
}

// buildPlist renders the LaunchAgent definition. KeepAlive makes launchd
// restart the daemon if it exits.
func buildPlist(execPath, logsDir string) string {
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>daemon</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>%s</string>
	<key>StandardErrorPath</key>
	<string>%s</string>
</dict>
</plist>
`,
		xmlEscape(Label),
		xmlEscape(execPath),
		xmlEscape(filepath.Join(logsDir, "daemon.log")),
		xmlEscape(filepath.Join(logsDir, "daemon.err.log")),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
