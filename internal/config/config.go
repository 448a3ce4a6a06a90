// Package config handles loading and managing the pomo configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/pomokit/pomo/internal/timer"
)

// ErrInvalid marks configuration the user has to fix: unparseable files
// and values outside their allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the ~/.pomo/config.yaml file.
type Config struct {
	Timer         TimerConfig         `yaml:"timer" mapstructure:"timer"`
	Sound         SoundConfig         `yaml:"sound" mapstructure:"sound"`
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Focus         FocusConfig         `yaml:"focus" mapstructure:"focus"`
	Metrics       MetricsConfig       `yaml:"metrics" mapstructure:"metrics"`
}

// TimerConfig holds the default session durations.
type TimerConfig struct {
	WorkMinutes      int  `yaml:"work_minutes" mapstructure:"work_minutes"`
	BreakMinutes     int  `yaml:"break_minutes" mapstructure:"break_minutes"`
	LongBreakMinutes int  `yaml:"long_break_minutes" mapstructure:"long_break_minutes"`
	AutoCycle        bool `yaml:"auto_cycle" mapstructure:"auto_cycle"`
}

// SoundConfig controls completion sound playback.
type SoundConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	CompletionSound string `yaml:"completion_sound" mapstructure:"completion_sound"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// FocusConfig controls the macOS focus mode integration. The shortcuts are
// run through Shortcuts.app and must exist when the integration is enabled.
type FocusConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	EnableShortcut  string `yaml:"enable_shortcut" mapstructure:"enable_shortcut"`
	DisableShortcut string `yaml:"disable_shortcut" mapstructure:"disable_shortcut"`
}

// MetricsConfig controls the daemon's optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Port    int  `yaml:"port" mapstructure:"port"`
}

// SessionConfig converts the configured timer defaults into an engine
// configuration. Focus mode enablement comes from the focus section.
func (c *Config) SessionConfig() timer.Config {
	return timer.Config{
		WorkMinutes:      c.Timer.WorkMinutes,
		BreakMinutes:     c.Timer.BreakMinutes,
		LongBreakMinutes: c.Timer.LongBreakMinutes,
		AutoCycle:        c.Timer.AutoCycle,
		FocusMode:        c.Focus.Enabled,
	}
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if err := c.SessionConfig().Validate(); err != nil {
		return err
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("%w: metrics port must be 1-65535, got %d", ErrInvalid, c.Metrics.Port)
	}
	return nil
}

// Load reads the config file from the state directory. A missing file is
// not an error; defaults are returned.
func Load() (*Config, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalid, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %v", ErrInvalid, err)
	}
	return &cfg, nil
}

// LoadOrDefault tries to load the config and falls back to defaults on any
// failure. Callers that need to surface parse errors use Load.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("timer.work_minutes", def.Timer.WorkMinutes)
	v.SetDefault("timer.break_minutes", def.Timer.BreakMinutes)
	v.SetDefault("timer.long_break_minutes", def.Timer.LongBreakMinutes)
	v.SetDefault("timer.auto_cycle", def.Timer.AutoCycle)
	v.SetDefault("sound.enabled", def.Sound.Enabled)
	v.SetDefault("sound.completion_sound", def.Sound.CompletionSound)
	v.SetDefault("notifications.enabled", def.Notifications.Enabled)
	v.SetDefault("focus.enabled", def.Focus.Enabled)
	v.SetDefault("focus.enable_shortcut", def.Focus.EnableShortcut)
	v.SetDefault("focus.disable_shortcut", def.Focus.DisableShortcut)
	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.port", def.Metrics.Port)
}
