// Package timer implements the pomodoro countdown state machine.
package timer

import (
	"encoding/json"
	"fmt"
)

// Phase is the discrete state of the timer.
type Phase int

const (
	Stopped Phase = iota
	Working
	Breaking
	LongBreaking
	Paused
)

var phaseNames = map[Phase]string{
	Stopped:      "stopped",
	Working:      "working",
	Breaking:     "breaking",
	LongBreaking: "long_breaking",
	Paused:       "paused",
}

var phaseFromName = map[string]Phase{
	"stopped":       Stopped,
	"working":       Working,
	"breaking":      Breaking,
	"long_breaking": LongBreaking,
	"paused":        Paused,
}

// String returns the wire name of the phase.
func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Active reports whether the phase is counting down.
func (p Phase) Active() bool {
	return p == Working || p == Breaking || p == LongBreaking
}

// Break reports whether the phase is one of the two break kinds.
func (p Phase) Break() bool {
	return p == Breaking || p == LongBreaking
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := phaseFromName[s]
	if !ok {
		return fmt.Errorf("unknown phase %q", s)
	}
	*p = v
	return nil
}

// ParsePhase maps a wire name back to a Phase.
func ParsePhase(s string) (Phase, bool) {
	p, ok := phaseFromName[s]
	return p, ok
}
