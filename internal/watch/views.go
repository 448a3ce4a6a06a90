package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/internal/ui"
)

// View renders the full watch screen.
func (m Model) View() string {
	if m.loading {
		return m.centered(m.styles.DimText.Render("Connecting to daemon..."))
	}
	if m.err != nil {
		return m.centered(m.renderError())
	}
	return m.centered(m.renderTimer())
}

func (m Model) renderTimer() string {
	s := m.styles
	snap := m.snap

	var b strings.Builder
	b.WriteString(s.Title.Render("POMO"))
	b.WriteString("\n\n")
	b.WriteString(m.phaseBadge(snap.State))
	b.WriteString("\n\n")

	if snap.State == timer.Stopped {
		b.WriteString(s.DimText.Render("No active session"))
		b.WriteString("\n\n")
		b.WriteString(s.DimText.Render("Run ") +
			s.FooterKey.Render("pomo start") +
			s.DimText.Render(" to begin"))
	} else {
		b.WriteString(s.Clock.Render(ui.FormatClock(snap.RemainingSeconds)))
		b.WriteString("\n\n")
		b.WriteString(m.bar.ViewAs(m.percent()))
		b.WriteString("\n\n")
		if snap.TaskName != nil {
			b.WriteString(s.Task.Render("Task: " + *snap.TaskName))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.Count.Render(fmt.Sprintf("Pomodoros completed: %d", snap.PomodoroCount)))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return m.styles.Frame.Render(b.String())
}

func (m Model) renderError() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.ErrorBanner.Render("Daemon unreachable"))
	b.WriteString("\n\n")
	b.WriteString(s.DimText.Render("Start it with ") +
		s.FooterKey.Render("pomo daemon") +
		s.DimText.Render(" or ") +
		s.FooterKey.Render("pomo agent install"))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return m.styles.Frame.Render(b.String())
}

func (m Model) renderFooter() string {
	s := m.styles
	return s.FooterKey.Render("r") + s.Footer.Render(" refresh  ") +
		s.FooterKey.Render("q") + s.Footer.Render(" quit")
}

func (m Model) phaseBadge(phase timer.Phase) string {
	s := m.styles
	switch phase {
	case timer.Working:
		return s.PhaseWork.Render("WORKING")
	case timer.Breaking:
		return s.PhaseBreak.Render("SHORT BREAK")
	case timer.LongBreaking:
		return s.PhaseBreak.Render("LONG BREAK")
	case timer.Paused:
		return s.PhasePaused.Render("PAUSED")
	default:
		return s.PhaseStopped.Render("STOPPED")
	}
}

// centered places content in the middle of the terminal, falling back to
// plain output before the first WindowSizeMsg arrives.
func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
