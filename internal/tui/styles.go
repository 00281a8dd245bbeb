package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"rendered": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"complete": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"speaking":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"compositing": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"encoding":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Degraded
		"silent": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		// Pending
		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
