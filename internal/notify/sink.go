// Package notify turns timer events into user-visible side effects:
// macOS banners, completion sounds, Focus shortcuts and log records.
// Every sink here tolerates failure; a broken notification never
// reaches the timer.
package notify

import (
	"log/slog"

	"github.com/pomokit/pomo/internal/timer"
)

// Fanout dispatches each event to a list of sinks in order.
type Fanout struct {
	sinks []timer.Sink
}

// NewFanout creates a composite sink. Order is preserved.
func NewFanout(sinks ...timer.Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Handle forwards the event to every sink.
func (f *Fanout) Handle(ev timer.Event) {
	for _, s := range f.sinks {
		s.Handle(ev)
	}
}

// LogSink records every event on the daemon log. Ticks are logged at
// debug level so a running timer does not flood the log.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a log sink. A nil logger falls back to slog.Default.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

// Handle logs the event with its state attributes.
func (s *LogSink) Handle(ev timer.Event) {
	attrs := []any{
		"event", ev.Kind.String(),
		"phase", ev.Phase.String(),
		"remaining", ev.RemainingSeconds,
		"count", ev.PomodoroCount,
	}
	if ev.TaskName != "" {
		attrs = append(attrs, "task", ev.TaskName)
	}

	if ev.Kind == timer.EventTick {
		s.log.Debug("tick", attrs...)
		return
	}
	s.log.Info("timer event", attrs...)
}
