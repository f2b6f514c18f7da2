package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle    = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#a6adc8"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	totalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94e2d5"))
	alertStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f38ba8")).
			Foreground(lipgloss.Color("#f38ba8")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(0, 1)
)
