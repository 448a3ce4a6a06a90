package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/daemon"
	"github.com/pomokit/pomo/internal/launchagent"
	"github.com/pomokit/pomo/internal/ui"
	"github.com/pomokit/pomo/pkg/shell"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the pomo environment",
	Long: `Check that pomo has everything it needs on this machine.

This command verifies:
  - The state directory is writable
  - The config file parses and validates
  - The daemon process and its socket
  - The launch agent
  - The macOS tools the notification sinks shell out to`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	status  string // "ok", "warning", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ui.Header("Pomo Doctor")

	ui.SubHeader("System Information")
	ui.KeyValue("OS", runtime.GOOS)
	ui.KeyValue("Arch", runtime.GOARCH)
	ui.KeyValue("Pomo", version)
	ui.NewLine()

	hasErrors := false

	ui.SubHeader("State")
	for _, r := range []checkResult{checkStateDir(), checkConfigFile()} {
		printCheckResult(r)
		if r.status == "error" {
			hasErrors = true
		}
	}
	ui.NewLine()

	// A stopped daemon is only a warning: pomo start brings it up.
	ui.SubHeader("Daemon")
	printCheckResult(checkDaemonProcess())
	printCheckResult(checkSocket())
	ui.NewLine()

	ui.SubHeader("Launch Agent")
	printCheckResult(checkAgent())
	ui.NewLine()

	ui.SubHeader("macOS Tools")
	printCheckResult(checkTool("osascript", "notification banners"))
	printCheckResult(checkTool("afplay", "completion sounds"))
	printCheckResult(checkTool("shortcuts", "focus mode"))
	ui.NewLine()

	if hasErrors {
		ui.Error("Some checks failed")
		return fmt.Errorf("doctor checks failed")
	}
	ui.Success("pomo is ready")
	return nil
}

func checkStateDir() checkResult {
	dir, err := config.EnsureStateDir()
	if err != nil {
		return checkResult{name: "state dir", status: "error", message: err.Error()}
	}

	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return checkResult{name: "state dir", status: "error",
			message: fmt.Sprintf("%s is not writable", dir)}
	}
	os.Remove(probe)

	return checkResult{name: "state dir", status: "ok", message: dir}
}

func checkConfigFile() checkResult {
	path, err := config.FilePath()
	if err != nil {
		return checkResult{name: "config", status: "error", message: err.Error()}
	}
	if !shell.FileExists(path) {
		return checkResult{name: "config", status: "ok", message: "no file, using defaults"}
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return checkResult{name: "config", status: "error", message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return checkResult{name: "config", status: "error", message: err.Error()}
	}
	return checkResult{name: "config", status: "ok", message: path}
}

func checkDaemonProcess() checkResult {
	pidPath, err := config.PidPath()
	if err != nil {
		return checkResult{name: "daemon process", status: "error", message: err.Error()}
	}

	pid, running := daemon.Running(pidPath)
	if !running {
		return checkResult{name: "daemon process", status: "warning",
			message: "not running ('pomo start' launches it)"}
	}
	return checkResult{name: "daemon process", status: "ok", message: fmt.Sprintf("pid %d", pid)}
}

func checkSocket() checkResult {
	c, err := daemonClient()
	if err != nil {
		return checkResult{name: "socket", status: "error", message: err.Error()}
	}

	if err := c.Ping(); err != nil {
		return checkResult{name: "socket", status: "warning",
			message: fmt.Sprintf("%s is not answering", c.SocketPath())}
	}
	return checkResult{name: "socket", status: "ok", message: c.SocketPath()}
}

func checkAgent() checkResult {
	status, err := launchagent.GetStatus()
	if err != nil {
		return checkResult{name: "launch agent", status: "error", message: err.Error()}
	}

	switch {
	case !status.Installed:
		return checkResult{name: "launch agent", status: "warning",
			message: "not installed ('pomo agent install' keeps the daemon alive)"}
	case !status.Loaded:
		return checkResult{name: "launch agent", status: "warning",
			message: "installed but not loaded"}
	case status.PID > 0:
		return checkResult{name: "launch agent", status: "ok",
			message: fmt.Sprintf("loaded, daemon pid %d", status.PID)}
	default:
		return checkResult{name: "launch agent", status: "ok", message: "loaded"}
	}
}

func checkTool(name, purpose string) checkResult {
	if !shell.CommandExists(name) {
		return checkResult{name: name, status: "warning",
			message: fmt.Sprintf("not found (used for %s)", purpose)}
	}
	return checkResult{name: name, status: "ok", message: shell.Which(name)}
}

func printCheckResult(r checkResult) {
	switch r.status {
	case "ok":
		detail := ""
		if r.message != "" {
			detail = ui.Dim(fmt.Sprintf(" (%s)", r.message))
		}
		ui.Success(fmt.Sprintf("%s%s", r.name, detail))
	case "warning":
		ui.Warning(fmt.Sprintf("%s - %s", r.name, r.message))
	case "error":
		ui.Error(fmt.Sprintf("%s - %s", r.name, r.message))
	}
}
