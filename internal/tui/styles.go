package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles titles and column headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	faintStyle   = lipgloss.NewStyle().Faint(true)
	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"created":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"merged":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"complete": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"ok":       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Unchanged
		"exists": lipgloss.NewStyle().Faint(true),
		"no-op":  lipgloss.NewStyle().Faint(true),

		// Needs attention
		"incomplete":       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"manifest-missing": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"missing":          lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"warn":             lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"conflict": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"error":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
