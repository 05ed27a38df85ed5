package color

import "github.com/charmbracelet/lipgloss"

var (
	Cyan  = lipgloss.Color("14") // Bright cyan
	Green = lipgloss.Color("10") // Bright green

	LightGray = lipgloss.Color("252") // Light gray
	DarkGray  = lipgloss.Color("240") // Dark gray
)
