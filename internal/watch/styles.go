package watch

import "github.com/charmbracelet/lipgloss"

// Color constants matching the ui package palette.
const (
	colorCyan   = lipgloss.Color("#00BCD4")
	colorGreen  = lipgloss.Color("#4CAF50")
	colorYellow = lipgloss.Color("#FFC107")
	colorRed    = lipgloss.Color("#F44336")
	colorBlue   = lipgloss.Color("#2196F3")
	colorDim    = lipgloss.Color("#666666")
	colorWhite  = lipgloss.Color("#FFFFFF")
)

// Styles holds the lipgloss styles for the watch view.
type Styles struct {
	Title        lipgloss.Style
	PhaseWork    lipgloss.Style
	PhaseBreak   lipgloss.Style
	PhasePaused  lipgloss.Style
	PhaseStopped lipgloss.Style
	Clock        lipgloss.Style
	Task         lipgloss.Style
	Count        lipgloss.Style
	DimText      lipgloss.Style
	ErrorBanner  lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	Frame        lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan),
		PhaseWork: badge.
			Foreground(colorWhite).
			Background(colorGreen),
		PhaseBreak: badge.
			Foreground(colorWhite).
			Background(colorBlue),
		PhasePaused: badge.
			Foreground(colorWhite).
			Background(colorYellow),
		PhaseStopped: badge.
			Foreground(colorWhite).
			Background(colorDim),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite),
		Task: lipgloss.NewStyle().
			Foreground(colorCyan),
		Count: lipgloss.NewStyle().
			Foreground(colorDim),
		DimText: lipgloss.NewStyle().
			Foreground(colorDim),
		ErrorBanner: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed),
		Footer: lipgloss.NewStyle().
			Foreground(colorDim),
		FooterKey: lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333355")).
			Padding(1, 3),
	}
}
