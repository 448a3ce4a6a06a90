package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/pomokit/pomo/internal/protocol"
	"github.com/pomokit/pomo/internal/timer"
)

func TestNormalizeTaskName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "write report", "write report", false},
		{"trims whitespace", "  deep work  ", "deep work", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"at limit", strings.Repeat("a", 100), strings.Repeat("a", 100), false},
		{"over limit", strings.Repeat("a", 101), "", true},
		{"multibyte runes count once", strings.Repeat("é", 100), strings.Repeat("é", 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTaskName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("normalizeTaskName() expected error")
				}
				if !errors.Is(err, timer.ErrInvalidConfig) {
					t.Errorf("error = %v, want to wrap ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeTaskName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("normalizeTaskName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlayStartParams(t *testing.T) {
	base := timer.Config{
		WorkMinutes:      25,
		BreakMinutes:     5,
		LongBreakMinutes: 15,
	}

	t.Run("empty params keep the defaults", func(t *testing.T) {
		got := overlayStartParams(base, protocol.StartParams{})
		if got != base {
			t.Errorf("overlayStartParams() = %+v, want %+v", got, base)
		}
	})

	t.Run("set params override their fields only", func(t *testing.T) {
		work := 50
		auto := true
		got := overlayStartParams(base, protocol.StartParams{
			WorkMinutes: &work,
			AutoCycle:   &auto,
		})

		if got.WorkMinutes != 50 {
			t.Errorf("WorkMinutes = %d, want 50", got.WorkMinutes)
		}
		if !got.AutoCycle {
			t.Error("AutoCycle = false, want true")
		}
		if got.BreakMinutes != 5 || got.LongBreakMinutes != 15 {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("overlaid config validates like any other", func(t *testing.T) {
		work := 500
		cfg := overlayStartParams(base, protocol.StartParams{WorkMinutes: &work})
		if err := cfg.Validate(); !errors.Is(err, timer.ErrInvalidConfig) {
			t.Errorf("Validate() error = %v, want to wrap ErrInvalidConfig", err)
		}
	})
}

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		phase timer.Phase
		want  string
	}{
		{timer.Working, "working"},
		{timer.Breaking, "short break"},
		{timer.LongBreaking, "long break"},
		{timer.Paused, "paused"},
		{timer.Stopped, "stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := phaseLabel(tt.phase); !strings.Contains(got, tt.want) {
				t.Errorf("phaseLabel(%v) = %q, want it to contain %q", tt.phase, got, tt.want)
			}
		})
	}
}
