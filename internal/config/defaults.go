package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pomokit/pomo/internal/timer"
)

// DefaultCompletionSound is played when a phase completes.
const DefaultCompletionSound = "/System/Library/Sounds/Glass.aiff"

// Default Shortcuts.app shortcut names for the focus integration.
const (
	DefaultEnableShortcut  = "Enable Work Focus"
	DefaultDisableShortcut = "Disable Work Focus"
)

// DefaultMetricsPort is the local port for the opt-in Prometheus endpoint.
const DefaultMetricsPort = 9317

// DefaultConfig returns the default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:      timer.DefaultWorkMinutes,
			BreakMinutes:     timer.DefaultBreakMinutes,
			LongBreakMinutes: timer.DefaultLongBreakMinutes,
			AutoCycle:        false,
		},
		Sound: SoundConfig{
			Enabled:         true,
			CompletionSound: DefaultCompletionSound,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Focus: FocusConfig{
			Enabled:         false,
			EnableShortcut:  DefaultEnableShortcut,
			DisableShortcut: DefaultDisableShortcut,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    DefaultMetricsPort,
		},
	}
}

// Save writes the configuration to path as YAML, creating the parent
// directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
