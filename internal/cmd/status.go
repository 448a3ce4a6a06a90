package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	Long: `Display what the daemon's timer is doing right now.

The block shows the phase, the task, the remaining time and how many
pomodoros the session has completed. Use --json for the raw state.`,
	RunE: runStatus,
}

var statusJSONFlag bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "print the raw state as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := daemonClient()
	if err != nil {
		return err
	}

	snap, err := c.Status()
	if err != nil {
		return err
	}

	if statusJSONFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	ui.Header("Pomo Status")
	ui.KeyValue("State", phaseLabel(snap.State))
	if snap.TaskName != nil {
		ui.KeyValue("Task", ui.Cyan(*snap.TaskName))
	}
	if snap.State != timer.Stopped {
		ui.KeyValue("Remaining", ui.Bold(ui.FormatClock(snap.RemainingSeconds)))
	}
	ui.KeyValue("Pomodoros completed", fmt.Sprintf("%d", snap.PomodoroCount))

	if snap.State == timer.Stopped {
		ui.NewLine()
		ui.Info("Run 'pomo start' to begin a session")
	}
	return nil
}

// phaseLabel renders a human phase name in its status color.
func phaseLabel(p timer.Phase) string {
	switch p {
	case timer.Working:
		return ui.Green("working")
	case timer.Breaking:
		return ui.Blue("short break")
	case timer.LongBreaking:
		return ui.Blue("long break")
	case timer.Paused:
		return ui.Yellow("paused")
	default:
		return ui.Dim("stopped")
	}
}
