package timer

import (
	"errors"
	"sync"
)

// Engine precondition errors. All are synchronous, user-correctable and
// never fatal to the daemon.
var (
	ErrInvalidConfig  = errors.New("invalid timer configuration")
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrNotRunning     = errors.New("timer is not running")
	ErrNotPaused      = errors.New("timer is not paused")
)

// Snapshot is the externally visible read-only view of the timer state.
// Its JSON shape is the "data" object of the wire protocol.
type Snapshot struct {
	State            Phase   `json:"state"`
	RemainingSeconds int     `json:"remainingSeconds"`
	PomodoroCount    int     `json:"pomodoroCount"`
	TaskName         *string `json:"taskName"`
}

// Engine owns the single mutable timer state and is its sole writer. Both
// the tick path and the command path call in concurrently, so every entry
// point serializes on one mutex. Events are emitted to the sink inside the
// critical section, which keeps cross-call event order consistent with the
// state timeline; the Sink contract requires Handle not to block.
type Engine struct {
	mu   sync.Mutex
	sink Sink

	cfg        Config
	phase      Phase
	remaining  int
	pomodoros  int
	task       string
	pausedFrom Phase
}

// NewEngine creates a stopped engine. A nil sink discards events.
func NewEngine(sink Sink) *Engine {
	return &Engine{
		sink: sink,
		cfg:  DefaultConfig(),
	}
}

// Start validates cfg, installs it as the session configuration and begins
// a work phase. Fails with ErrAlreadyRunning unless the timer is stopped.
func (e *Engine) Start(cfg Config, taskName string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Stopped {
		return e.snapshotLocked(), ErrAlreadyRunning
	}
	if err := cfg.Validate(); err != nil {
		return e.snapshotLocked(), err
	}

	e.cfg = cfg
	e.phase = Working
	e.remaining = cfg.workSeconds()
	e.task = SanitizeTaskName(taskName)
	e.pausedFrom = Stopped

	e.emitLocked(EventWorkStarted, false)
	return e.snapshotLocked(), nil
}

// Pause freezes the countdown, remembering the active phase so Resume can
// restore it exactly.
func (e *Engine) Pause() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.phase.Active() {
		return e.snapshotLocked(), ErrNotRunning
	}

	e.pausedFrom = e.phase
	e.phase = Paused

	e.emitLocked(EventPaused, false)
	return e.snapshotLocked(), nil
}

// Resume restores the phase that was active when Pause was called, leaving
// the remaining time untouched.
func (e *Engine) Resume() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Paused {
		return e.snapshotLocked(), ErrNotPaused
	}

	restored := e.pausedFrom
	if !restored.Active() {
		restored = Working
	}
	e.phase = restored
	e.pausedFrom = Stopped

	e.emitLocked(EventResumed, false)
	return e.snapshotLocked(), nil
}

// Stop ends the session. The pomodoro count is preserved for the lifetime
// of the process; the task label is cleared.
func (e *Engine) Stop() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == Stopped {
		return e.snapshotLocked(), ErrNotRunning
	}

	e.phase = Stopped
	e.remaining = 0
	e.task = ""
	e.pausedFrom = Stopped

	e.emitLocked(EventStopped, false)
	return e.snapshotLocked(), nil
}

// Status returns the current state. It never fails.
func (e *Engine) Status() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Config returns the configuration of the current session.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Tick advances the countdown by one second. It is a no-op outside active
// phases. When the countdown reaches zero the whole phase transition runs
// inside this call, so no observer ever sees zero remaining seconds in an
// active phase.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.phase.Active() {
		return
	}

	e.remaining--
	if e.remaining > 0 {
		e.emitLocked(EventTick, false)
		return
	}
	e.completePhaseLocked()
}

// completePhaseLocked handles the instant the countdown hits zero.
//
// Completing work increments the pomodoro count and rolls straight into a
// break; every PomodorosPerLongBreak-th pomodoro earns the long one.
// Completing a break either auto-cycles into the next work phase or stops.
// The state transition is applied before any event is emitted, so no
// event ever carries an exhausted countdown in an active phase; the kind
// of break that was entered or completed travels on the event itself.
func (e *Engine) completePhaseLocked() {
	switch e.phase {
	case Working:
		e.pomodoros++
		long := e.pomodoros%PomodorosPerLongBreak == 0
		if long {
			e.phase = LongBreaking
			e.remaining = e.cfg.longBreakSeconds()
		} else {
			e.phase = Breaking
			e.remaining = e.cfg.breakSeconds()
		}
		e.emitLocked(EventWorkCompleted, long)
		e.emitLocked(EventBreakStarted, long)

	case Breaking, LongBreaking:
		long := e.phase == LongBreaking
		if e.cfg.AutoCycle {
			e.phase = Working
			e.remaining = e.cfg.workSeconds()
			e.emitLocked(EventBreakCompleted, long)
			e.emitLocked(EventWorkStarted, false)
		} else {
			// No Stopped event here: the session ended on its own
			// rather than by command.
			e.phase = Stopped
			e.remaining = 0
			e.task = ""
			e.emitLocked(EventBreakCompleted, long)
		}
	}
}

func (e *Engine) emitLocked(kind EventKind, longBreak bool) {
	if e.sink == nil {
		return
	}
	e.sink.Handle(Event{
		Kind:             kind,
		Phase:            e.phase,
		RemainingSeconds: e.remaining,
		PomodoroCount:    e.pomodoros,
		TaskName:         e.task,
		LongBreak:        longBreak,
		FocusMode:        e.cfg.FocusMode,
	})
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:            e.phase,
		RemainingSeconds: e.remaining,
		PomodoroCount:    e.pomodoros,
	}
	if e.task != "" {
		task := e.task
		snap.TaskName = &task
	}
	return snap
}
