package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#88c0d1"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4c566a"))

	Success = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a3be8c"))

	Failure = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#bf616a"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81a1c0"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eceff4")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5e81ab")).
		Italic(true)

	// Dots colours braille previews with the middle stop of the marker gradient.
	Dots = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#88c0d1"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4c566a")).
		Padding(0, 1)
)

// Metric formats a "label value" pair.
func Metric(label string, value any) string {
	return MetricLabel.Render(label) + " " + MetricValue.Render(fmt.Sprint(value))
}
