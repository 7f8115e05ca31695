package render

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	columnTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	continuationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Faint(true)
)
