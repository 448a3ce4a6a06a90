package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/daemon"
)

// daemonCmd is hidden: users normally reach it through autostart or the
// launch agent, not by hand.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the pomo daemon in the foreground",
	Long: `Run the timer daemon in the foreground.

The daemon owns the countdown, serves the Unix socket and emits
notifications. It logs to stdout; under launchd the agent plist
redirects that to ~/.pomo/logs.`,
	Hidden: true,
	RunE:   runDaemon,
}

var (
	daemonNoSoundFlag     bool
	daemonMetricsPortFlag int
)

func init() {
	daemonCmd.Flags().BoolVar(&daemonNoSoundFlag, "no-sound", false, "disable completion sounds")
	daemonCmd.Flags().IntVar(&daemonMetricsPortFlag, "metrics-port", 0, "metrics port override (0 uses the config file)")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sock, err := socketPath()
	if err != nil {
		return err
	}
	pidPath, err := config.PidPath()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := daemon.New(daemon.Options{
		SocketPath:  sock,
		PidPath:     pidPath,
		Config:      *cfg,
		NoSound:     daemonNoSoundFlag,
		MetricsPort: daemonMetricsPortFlag,
		Logger:      log,
	})
	return d.Run(ctx)
}
