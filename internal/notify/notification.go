package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/pkg/shell"
)

const notifyTimeout = 5 * time.Second

// NotificationSink posts macOS notification banners via osascript.
type NotificationSink struct {
	runner shell.Runner
	log    *slog.Logger
}

// NewNotificationSink creates a notification sink.
func NewNotificationSink(runner shell.Runner, log *slog.Logger) *NotificationSink {
	if runner == nil {
		runner = shell.NewRunner()
	}
	if log == nil {
		log = slog.Default()
	}
	return &NotificationSink{runner: runner, log: log}
}

// Handle posts a banner for state transitions. Ticks, pauses and resumes
// stay silent. The osascript call runs off the event path.
func (s *NotificationSink) Handle(ev timer.Event) {
	title, body := bannerText(ev)
	if title == "" {
		return
	}

	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(body), escapeAppleScript(title))

	go func() {
		res, err := s.runner.RunWithTimeout(notifyTimeout, "osascript", "-e", script)
		if err != nil {
			s.log.Warn("notification failed", "error", err)
			return
		}
		if res.ExitCode != 0 {
			s.log.Warn("notification failed", "exit_code", res.ExitCode, "stderr", res.Stderr)
		}
	}()
}

// bannerText maps an event to its notification title and body. An empty
// title means no banner.
func bannerText(ev timer.Event) (title, body string) {
	minutes := ev.RemainingSeconds / 60

	switch ev.Kind {
	case timer.EventWorkStarted:
		if ev.TaskName != "" {
			return "Pomodoro started", fmt.Sprintf("%d minutes on %s", minutes, ev.TaskName)
		}
		return "Pomodoro started", fmt.Sprintf("%d minutes of focused work", minutes)

	case timer.EventWorkCompleted:
		if ev.TaskName != "" {
			return "Pomodoro complete", fmt.Sprintf("Pomodoro #%d finished: %s", ev.PomodoroCount, ev.TaskName)
		}
		return "Pomodoro complete", fmt.Sprintf("Pomodoro #%d finished", ev.PomodoroCount)

	case timer.EventBreakStarted:
		if ev.LongBreak {
			return "Break time", fmt.Sprintf("Long break: %d minutes", minutes)
		}
		return "Break time", fmt.Sprintf("Short break: %d minutes", minutes)

	case timer.EventBreakCompleted:
		return "Break over", "Break finished"

	case timer.EventStopped:
		if ev.PomodoroCount > 0 {
			return "Pomodoro stopped", fmt.Sprintf("%d pomodoros completed", ev.PomodoroCount)
		}
		return "Pomodoro stopped", "Timer stopped"
	}

	return "", ""
}

// escapeAppleScript escapes a string for embedding in an AppleScript
// string literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
