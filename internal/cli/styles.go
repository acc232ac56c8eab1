package cli

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	AffirmationStyle = lipgloss.NewStyle().
				Italic(true).
				Padding(1, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7D56F4"))
)

// Check renders a ritual checkbox.
func Check(done bool) string {
	if done {
		return SuccessStyle.Render("[x]")
	}
	return "[ ]"
}
