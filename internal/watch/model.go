// Package watch renders a full-screen live view of the running timer,
// polling the daemon once per second.
package watch

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pomokit/pomo/internal/client"
	"github.com/pomokit/pomo/internal/timer"
)

const (
	pollInterval = time.Second
	maxBarWidth  = 50
)

// Messages for the bubbletea event loop.
type (
	tickMsg   struct{}
	statusMsg struct {
		snap *timer.Snapshot
		err  error
	}
)

// Model is the bubbletea model for the watch view.
type Model struct {
	client *client.Client
	keys   KeyMap
	styles Styles
	bar    progress.Model

	snap    *timer.Snapshot
	err     error
	loading bool

	// phaseTotal is the largest remaining value seen in the current
	// phase; it stands in for the unknown phase duration when the view
	// attaches mid-session.
	phase      timer.Phase
	phaseTotal int

	width, height int
}

// NewModel creates a watch model polling the given client.
func NewModel(c *client.Client) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxBarWidth

	return Model{
		client:  c,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		bar:     bar,
		loading: true,
	}
}

// Init fires the first status poll.
func (m Model) Init() tea.Cmd {
	return pollCmd(m.client)
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(maxBarWidth, msg.Width-10)
		return m, nil

	case tickMsg:
		return m, pollCmd(m.client)

	case statusMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.trackPhase(msg.snap)
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, pollCmd(m.client)
		}
	}

	return m, nil
}

// trackPhase keeps the progress denominator current. A pause freezes the
// countdown, so totals carry across it untouched.
func (m *Model) trackPhase(snap *timer.Snapshot) {
	if snap.State == timer.Paused {
		return
	}
	if snap.State != m.phase {
		m.phase = snap.State
		m.phaseTotal = snap.RemainingSeconds
		return
	}
	if snap.RemainingSeconds > m.phaseTotal {
		m.phaseTotal = snap.RemainingSeconds
	}
}

// percent reports how far the current phase has progressed.
func (m Model) percent() float64 {
	if m.snap == nil || m.phaseTotal <= 0 {
		return 0
	}
	done := m.phaseTotal - m.snap.RemainingSeconds
	if done < 0 {
		return 0
	}
	return float64(done) / float64(m.phaseTotal)
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func pollCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		snap, err := c.Status()
		return statusMsg{snap: snap, err: err}
	}
}

// Run starts the full-screen watch view and blocks until the user quits.
func Run(c *client.Client) error {
	p := tea.NewProgram(NewModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
