package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	monthLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	weekdayLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Width(4)

	selectedCellStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("205")).
				Bold(true)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	perfectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

func cellStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
