package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/protocol"
	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/internal/ui"
	"github.com/pomokit/pomo/pkg/shell"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a pomodoro",
	Long: `Start a work session on the daemon's timer.

Durations come from flags, then the config file, then the built-in
defaults (25/5/15 minutes). If the daemon is not running it is started
in the background first; pass --autostart-daemon=false to fail instead.`,
	Example: `  pomo start
  pomo start -t "write report"
  pomo start -w 50 -b 10 --auto-cycle`,
	RunE: runStart,
}

var (
	startWorkFlag      int
	startBreakFlag     int
	startLongBreakFlag int
	startTaskFlag      string
	startAutoCycleFlag bool
	startFocusFlag     bool
	startAutostartFlag bool
)

func init() {
	startCmd.Flags().IntVarP(&startWorkFlag, "work", "w", 0, "work duration in minutes")
	startCmd.Flags().IntVarP(&startBreakFlag, "break", "b", 0, "short break duration in minutes")
	startCmd.Flags().IntVarP(&startLongBreakFlag, "long-break", "l", 0, "long break duration in minutes")
	startCmd.Flags().StringVarP(&startTaskFlag, "task", "t", "", "task name to attach to the session")
	startCmd.Flags().BoolVarP(&startAutoCycleFlag, "auto-cycle", "a", false, "roll into the next pomodoro when a break ends")
	startCmd.Flags().BoolVarP(&startFocusFlag, "focus", "f", false, "toggle macOS focus mode with the session")
	startCmd.Flags().BoolVar(&startAutostartFlag, "autostart-daemon", true, "start the daemon if it is not running")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	params := protocol.StartParams{}
	flags := cmd.Flags()

	if flags.Changed("work") {
		params.WorkMinutes = &startWorkFlag
	}
	if flags.Changed("break") {
		params.BreakMinutes = &startBreakFlag
	}
	if flags.Changed("long-break") {
		params.LongBreakMinutes = &startLongBreakFlag
	}
	if flags.Changed("auto-cycle") {
		params.AutoCycle = &startAutoCycleFlag
	}
	if flags.Changed("focus") {
		params.FocusMode = &startFocusFlag
	}
	if flags.Changed("task") {
		task, err := normalizeTaskName(startTaskFlag)
		if err != nil {
			return err
		}
		params.TaskName = &task
	}

	// Validate locally so bad values fail fast with the validation exit
	// code even when the daemon is down.
	cfg := config.LoadOrDefault()
	if err := overlayStartParams(cfg.SessionConfig(), params).Validate(); err != nil {
		return err
	}

	c, err := daemonClient()
	if err != nil {
		return err
	}

	snap, err := c.Start(params)
	if errors.Is(err, client.ErrDaemonNotRunning) && startAutostartFlag {
		if err := autostartDaemon(c); err != nil {
			return err
		}
		snap, err = c.Start(params)
	}
	if err != nil {
		return err
	}

	ui.Successf("Pomodoro started: %s on the clock", ui.FormatClock(snap.RemainingSeconds))
	if snap.TaskName != nil {
		ui.KeyValue("Task", ui.Cyan(*snap.TaskName))
	}
	if snap.PomodoroCount > 0 {
		ui.KeyValue("Completed today", fmt.Sprintf("%d", snap.PomodoroCount))
	}
	return nil
}

// normalizeTaskName trims and validates an explicitly supplied task name.
func normalizeTaskName(name string) (string, error) {
	task := strings.TrimSpace(name)
	if task == "" {
		return "", fmt.Errorf("%w: task name must not be empty", timer.ErrInvalidConfig)
	}
	if utf8.RuneCountInString(task) > timer.MaxTaskNameLength {
		return "", fmt.Errorf("%w: task name must be at most %d characters",
			timer.ErrInvalidConfig, timer.MaxTaskNameLength)
	}
	return task, nil
}

// overlayStartParams applies the set parameters on top of the configured
// session defaults, mirroring what the daemon does with the request.
func overlayStartParams(cfg timer.Config, params protocol.StartParams) timer.Config {
	if params.WorkMinutes != nil {
		cfg.WorkMinutes = *params.WorkMinutes
	}
	if params.BreakMinutes != nil {
		cfg.BreakMinutes = *params.BreakMinutes
	}
	if params.LongBreakMinutes != nil {
		cfg.LongBreakMinutes = *params.LongBreakMinutes
	}
	if params.AutoCycle != nil {
		cfg.AutoCycle = *params.AutoCycle
	}
	if params.FocusMode != nil {
		cfg.FocusMode = *params.FocusMode
	}
	return cfg
}

// autostartDaemon spawns "pomo daemon" in the background and waits for
// its socket to accept commands.
func autostartDaemon(c *client.Client) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate the pomo binary: %w", err)
	}

	daemonArgs := []string{"daemon"}
	if socketFlag != "" {
		daemonArgs = append(daemonArgs, "--socket", socketFlag)
	}

	pid, err := shell.StartDetached(exe, daemonArgs...)
	if err != nil {
		return fmt.Errorf("failed to start the daemon: %w", err)
	}
	ui.Debugf("spawned pomo daemon (pid %d)", pid)

	sp := ui.NewSpinner("Waiting for the daemon")
	sp.Start()
	err = waitForDaemon(c, 5*time.Second)
	if err != nil {
		sp.Fail("Daemon did not come up")
		return err
	}
	sp.Stop()
	return nil
}

// waitForDaemon polls the socket until it answers or the deadline passes.
func waitForDaemon(c *client.Client, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := c.Ping()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: gave up after %s", client.ErrDaemonNotRunning, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
