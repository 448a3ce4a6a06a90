package timer

// EventKind identifies the domain event a transition produced.
type EventKind int

const (
	EventWorkStarted EventKind = iota
	EventWorkCompleted
	EventBreakStarted
	EventBreakCompleted
	EventPaused
	EventResumed
	EventStopped
	EventTick
)

var eventKindNames = map[EventKind]string{
	EventWorkStarted:    "work_started",
	EventWorkCompleted:  "work_completed",
	EventBreakStarted:   "break_started",
	EventBreakCompleted: "break_completed",
	EventPaused:         "paused",
	EventResumed:        "resumed",
	EventStopped:        "stopped",
	EventTick:           "tick",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a fire-and-forget record of one state transition or tick. Fields
// beyond Kind carry the state after the transition has been applied, so no
// event exposes an exhausted countdown in an active phase. LongBreak names
// the break kind on the two break events and on the work completion that
// rolls into a break; other kinds leave it false. FocusMode reflects the
// session configuration so sinks can gate focus side effects without asking
// the engine back.
type Event struct {
	Kind             EventKind
	Phase            Phase
	RemainingSeconds int
	PomodoroCount    int
	TaskName         string
	LongBreak        bool
	FocusMode        bool
}

// Sink consumes engine events. Handle is called with the engine's internal
// lock held and must not block; sinks doing slow work hand it off.
type Sink interface {
	Handle(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Handle calls f(ev).
func (f SinkFunc) Handle(ev Event) { f(ev) }
