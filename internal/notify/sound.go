package notify

import (
	"log/slog"

	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/pkg/shell"
)

// SoundSink plays a completion sound via afplay when a work phase or a
// break finishes.
type SoundSink struct {
	runner shell.Runner
	sound  string
	log    *slog.Logger
}

// NewSoundSink creates a sound sink playing the given sound file. An
// empty path disables playback.
func NewSoundSink(runner shell.Runner, sound string, log *slog.Logger) *SoundSink {
	if runner == nil {
		runner = shell.NewRunner()
	}
	if log == nil {
		log = slog.Default()
	}
	return &SoundSink{runner: runner, sound: sound, log: log}
}

// Handle plays the sound on completion events. Playback runs off the
// event path and is bounded by a timeout.
func (s *SoundSink) Handle(ev timer.Event) {
	if s.sound == "" {
		return
	}
	if ev.Kind != timer.EventWorkCompleted && ev.Kind != timer.EventBreakCompleted {
		return
	}

	go func() {
		res, err := s.runner.RunWithTimeout(notifyTimeout, "afplay", s.sound)
		if err != nil {
			s.log.Warn("sound playback failed", "sound", s.sound, "error", err)
			return
		}
		if res.ExitCode != 0 {
			s.log.Warn("sound playback failed", "sound", s.sound, "exit_code", res.ExitCode)
		}
	}()
}
