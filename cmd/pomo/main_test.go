package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/timer"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic error", errors.New("boom"), 1},
		{"invalid timer config", timer.ErrInvalidConfig, 2},
		{"wrapped invalid config", fmt.Errorf("start: %w", timer.ErrInvalidConfig), 2},
		{"invalid config file", config.ErrInvalid, 2},
		{"daemon not running", client.ErrDaemonNotRunning, 3},
		{"wrapped daemon not running", fmt.Errorf("gave up: %w", client.ErrDaemonNotRunning), 3},
		{"server rejection", &client.ServerError{Message: "timer is already running"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
