package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/ui"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running timer",
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused timer",
	RunE:  runResume,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and clear the session",
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(stopCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	c, err := daemonClient()
	if err != nil {
		return err
	}

	snap, err := c.Pause()
	if err != nil {
		return err
	}

	ui.Successf("Timer paused at %s", ui.FormatClock(snap.RemainingSeconds))
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	c, err := daemonClient()
	if err != nil {
		return err
	}

	snap, err := c.Resume()
	if err != nil {
		return err
	}

	ui.Successf("Timer resumed: %s remaining", ui.FormatClock(snap.RemainingSeconds))
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	c, err := daemonClient()
	if err != nil {
		return err
	}

	snap, err := c.Stop()
	if err != nil {
		return err
	}

	ui.Success("Timer stopped")
	if snap.PomodoroCount > 0 {
		ui.KeyValue("Pomodoros completed", fmt.Sprintf("%d", snap.PomodoroCount))
	}
	return nil
}
