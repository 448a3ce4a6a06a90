// Package cmd implements the pomo CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/config"
)

var (
	version    = "dev"
	verbose    bool
	noColor    bool
	socketFlag string
)

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "Pomodoro timer that lives in a background daemon",
	Long: `pomo is a pomodoro timer split into a background daemon and a thin CLI.

The daemon owns the countdown, so the timer keeps running while terminals
come and go. Commands talk to it over a Unix socket in ~/.pomo.

Get started:
  pomo start           Start a 25 minute pomodoro
  pomo status          Show the current timer state
  pomo watch           Watch the countdown full screen
  pomo agent install   Keep the daemon running via launchd`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "daemon socket path (default is ~/.pomo/pomo.sock)")

	// Version flag
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("pomo version {{.Version}}\n")
}

func initConfig() {
	if noColor {
		os.Setenv("NO_COLOR", "1")
	}
	if verbose {
		os.Setenv("POMO_DEBUG", "1")
	}
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// socketPath resolves the daemon socket, honoring the --socket override.
func socketPath() (string, error) {
	if socketFlag != "" {
		return socketFlag, nil
	}
	return config.SocketPath()
}

// daemonClient builds a client for the resolved socket path.
func daemonClient() (*client.Client, error) {
	path, err := socketPath()
	if err != nil {
		return nil, err
	}
	return client.New(path), nil
}
