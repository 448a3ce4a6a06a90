package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/cmd"
	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/timer"
)

// Version is set via ldflags at build time
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode classifies errors for scripting: 2 for values the user has to
// fix, 3 when the daemon cannot be reached, 1 for everything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, timer.ErrInvalidConfig), errors.Is(err, config.ErrInvalid):
		return 2
	case errors.Is(err, client.ErrDaemonNotRunning):
		return 3
	default:
		return 1
	}
}
