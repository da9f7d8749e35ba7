package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFCF40"))

	activeModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	inactiveModeStyle = lipgloss.NewStyle().
				Faint(true)

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#1E90FF"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	helpTextStyle = lipgloss.NewStyle().
			Faint(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00FF00"))

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			Padding(0, 1)

	guideBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2)
)
