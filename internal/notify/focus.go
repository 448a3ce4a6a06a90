package notify

import (
	"log/slog"
	"sync"

	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/pkg/shell"
)

// FocusSink toggles a macOS Focus mode through Shortcuts.app. It only
// acts on sessions started with focus mode enabled, enabling the focus
// while work runs and disabling it at every boundary where work stops.
type FocusSink struct {
	runner          shell.Runner
	enableShortcut  string
	disableShortcut string
	log             *slog.Logger
	warnOnce        sync.Once
}

// NewFocusSink creates a focus sink running the named shortcuts.
func NewFocusSink(runner shell.Runner, enableShortcut, disableShortcut string, log *slog.Logger) *FocusSink {
	if runner == nil {
		runner = shell.NewRunner()
	}
	if log == nil {
		log = slog.Default()
	}
	return &FocusSink{
		runner:          runner,
		enableShortcut:  enableShortcut,
		disableShortcut: disableShortcut,
		log:             log,
	}
}

// Handle enables the focus when a work phase begins and disables it when
// work completes, pauses or the timer stops. Resuming re-enables only
// when the restored phase is a work phase.
func (s *FocusSink) Handle(ev timer.Event) {
	if !ev.FocusMode {
		return
	}

	switch ev.Kind {
	case timer.EventWorkStarted:
		s.runShortcut(s.enableShortcut)
	case timer.EventWorkCompleted, timer.EventPaused, timer.EventStopped:
		s.runShortcut(s.disableShortcut)
	case timer.EventResumed:
		if ev.Phase == timer.Working {
			s.runShortcut(s.enableShortcut)
		}
	}
}

func (s *FocusSink) runShortcut(name string) {
	if name == "" {
		return
	}
	if !s.runner.CommandExists("shortcuts") {
		s.warnOnce.Do(func() {
			s.log.Warn("shortcuts binary not found, focus mode has no effect")
		})
		return
	}

	go func() {
		res, err := s.runner.RunWithTimeout(notifyTimeout, "shortcuts", "run", name)
		if err != nil {
			s.log.Warn("focus shortcut failed", "shortcut", name, "error", err)
			return
		}
		if res.ExitCode != 0 {
			s.log.Warn("focus shortcut failed", "shortcut", name, "exit_code", res.ExitCode, "stderr", res.Stderr)
		}
	}()
}
