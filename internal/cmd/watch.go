package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/ui"
	"github.com/pomokit/pomo/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the countdown full screen",
	Long: `Open a full-screen live view of the timer.

The view polls the daemon once a second. Press q to quit; the timer
keeps running in the daemon.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := daemonClient()
	if err != nil {
		return err
	}

	// Fail before entering the alternate screen when there is nothing to
	// watch. Connection drops mid-session render inside the view instead.
	if err := c.Ping(); err != nil {
		if errors.Is(err, client.ErrDaemonNotRunning) {
			ui.Info("Run 'pomo start' to launch the daemon and begin a session")
		}
		return err
	}

	return watch.Run(c)
}
