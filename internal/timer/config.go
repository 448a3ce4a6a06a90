package timer

import (
	"fmt"
	"strings"
	"unicode"
)

// Duration bounds in minutes.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60
)

// Defaults for a session started without explicit durations.
const (
	DefaultWorkMinutes      = 25
	DefaultBreakMinutes     = 5
	DefaultLongBreakMinutes = 15
)

// PomodorosPerLongBreak is the cadence of long breaks: every Nth completed
// work phase is followed by a long break instead of a short one.
const PomodorosPerLongBreak = 4

// MaxTaskNameLength is the maximum task label length in runes.
const MaxTaskNameLength = 100

// Config holds the per-session timer settings. It is fixed for the lifetime
// of one session: Start installs it and nothing mutates it until the next
// Start.
type Config struct {
	WorkMinutes      int
	BreakMinutes     int
	LongBreakMinutes int
	AutoCycle        bool
	FocusMode        bool
}

// DefaultConfig returns the standard 25/5/15 pomodoro configuration.
func DefaultConfig() Config {
	return Config{
		WorkMinutes:      DefaultWorkMinutes,
		BreakMinutes:     DefaultBreakMinutes,
		LongBreakMinutes: DefaultLongBreakMinutes,
	}
}

// Validate checks the duration bounds. Returned errors wrap
// ErrInvalidConfig so callers can classify them with errors.Is.
func (c Config) Validate() error {
	if c.WorkMinutes < MinWorkMinutes || c.WorkMinutes > MaxWorkMinutes {
		return fmt.Errorf("%w: work duration must be %d-%d minutes, got %d",
			ErrInvalidConfig, MinWorkMinutes, MaxWorkMinutes, c.WorkMinutes)
	}
	if c.BreakMinutes < MinBreakMinutes || c.BreakMinutes > MaxBreakMinutes {
		return fmt.Errorf("%w: break duration must be %d-%d minutes, got %d",
			ErrInvalidConfig, MinBreakMinutes, MaxBreakMinutes, c.BreakMinutes)
	}
	if c.LongBreakMinutes < MinBreakMinutes || c.LongBreakMinutes > MaxBreakMinutes {
		return fmt.Errorf("%w: long break duration must be %d-%d minutes, got %d",
			ErrInvalidConfig, MinBreakMinutes, MaxBreakMinutes, c.LongBreakMinutes)
	}
	return nil
}

func (c Config) workSeconds() int      { return c.WorkMinutes * 60 }
func (c Config) breakSeconds() int     { return c.BreakMinutes * 60 }
func (c Config) longBreakSeconds() int { return c.LongBreakMinutes * 60 }

// SanitizeTaskName truncates a task label to MaxTaskNameLength runes and
// strips control characters. An empty result means "no task".
func SanitizeTaskName(name string) string {
	runes := []rune(name)
	if len(runes) > MaxTaskNameLength {
		runes = runes[:MaxTaskNameLength]
	}
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
