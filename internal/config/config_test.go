package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_HasExpectedValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timer.WorkMinutes != 25 {
		t.Errorf("DefaultConfig().Timer.WorkMinutes = %d, want 25", cfg.Timer.WorkMinutes)
	}
	if cfg.Timer.BreakMinutes != 5 {
		t.Errorf("DefaultConfig().Timer.BreakMinutes = %d, want 5", cfg.Timer.BreakMinutes)
	}
	if cfg.Timer.LongBreakMinutes != 15 {
		t.Errorf("DefaultConfig().Timer.LongBreakMinutes = %d, want 15", cfg.Timer.LongBreakMinutes)
	}
	if cfg.Timer.AutoCycle {
		t.Error("DefaultConfig().Timer.AutoCycle = true, want false")
	}

	if !cfg.Sound.Enabled {
		t.Error("DefaultConfig().Sound.Enabled = false, want true")
	}
	if cfg.Sound.CompletionSound != DefaultCompletionSound {
		t.Errorf("DefaultConfig().Sound.CompletionSound = %q, want %q", cfg.Sound.CompletionSound, DefaultCompletionSound)
	}

	if !cfg.Notifications.Enabled {
		t.Error("DefaultConfig().Notifications.Enabled = false, want true")
	}

	if cfg.Focus.Enabled {
		t.Error("DefaultConfig().Focus.Enabled = true, want false")
	}
	if cfg.Focus.EnableShortcut != "Enable Work Focus" {
		t.Errorf("DefaultConfig().Focus.EnableShortcut = %q, want %q", cfg.Focus.EnableShortcut, "Enable Work Focus")
	}

	if cfg.Metrics.Enabled {
		t.Error("DefaultConfig().Metrics.Enabled = true, want false")
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("DefaultConfig().Metrics.Port = %d, want %d", cfg.Metrics.Port, DefaultMetricsPort)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoadFromPath_OverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `timer:
  work_minutes: 50
  auto_cycle: true
sound:
  enabled: false
focus:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Timer.WorkMinutes != 50 {
		t.Errorf("Timer.WorkMinutes = %d, want 50", cfg.Timer.WorkMinutes)
	}
	if !cfg.Timer.AutoCycle {
		t.Error("Timer.AutoCycle = false, want true")
	}

	// Values absent from the file keep their defaults.
	if cfg.Timer.BreakMinutes != 5 {
		t.Errorf("Timer.BreakMinutes = %d, want default 5", cfg.Timer.BreakMinutes)
	}
	if cfg.Timer.LongBreakMinutes != 15 {
		t.Errorf("Timer.LongBreakMinutes = %d, want default 15", cfg.Timer.LongBreakMinutes)
	}
	if cfg.Focus.EnableShortcut != DefaultEnableShortcut {
		t.Errorf("Focus.EnableShortcut = %q, want default %q", cfg.Focus.EnableShortcut, DefaultEnableShortcut)
	}

	// Explicit false wins over a true default.
	if cfg.Sound.Enabled {
		t.Error("Sound.Enabled = true, want false from file")
	}

	if !cfg.Focus.Enabled {
		t.Error("Focus.Enabled = false, want true from file")
	}
	if !cfg.SessionConfig().FocusMode {
		t.Error("SessionConfig().FocusMode = false, want true")
	}
}

func TestLoadFromPath_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("timer: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() expected error for malformed yaml")
	}
}

func TestConfig_ValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"work too high", func(c *Config) { c.Timer.WorkMinutes = 500 }},
		{"break zero", func(c *Config) { c.Timer.BreakMinutes = 0 }},
		{"long break negative", func(c *Config) { c.Timer.LongBreakMinutes = -1 }},
		{"metrics port out of range", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Timer.WorkMinutes = 45
	cfg.Focus.Enabled = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	back, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if back.Timer.WorkMinutes != 45 {
		t.Errorf("round-trip WorkMinutes = %d, want 45", back.Timer.WorkMinutes)
	}
	if !back.Focus.Enabled {
		t.Error("round-trip Focus.Enabled = false, want true")
	}
	if back.Sound.CompletionSound != DefaultCompletionSound {
		t.Errorf("round-trip CompletionSound = %q, want %q", back.Sound.CompletionSound, DefaultCompletionSound)
	}
}

func TestStateDir_EnvOverride(t *testing.T) {
	t.Setenv(EnvStateDir, "/tmp/pomo-test-home")

	dir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error = %v", err)
	}
	if dir != "/tmp/pomo-test-home" {
		t.Errorf("StateDir() = %q, want %q", dir, "/tmp/pomo-test-home")
	}

	sock, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error = %v", err)
	}
	if sock != filepath.Join(dir, "pomo.sock") {
		t.Errorf("SocketPath() = %q, want under state dir", sock)
	}
}
