package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every dashboard widget.
var (
	ColorNavy   = lipgloss.Color("#1b2a4a")
	ColorWhite  = lipgloss.Color("#ffffff")
	ColorGray   = lipgloss.Color("8")
	ColorBlue   = lipgloss.Color("39")
	ColorYellow = lipgloss.Color("#ffcc00")
	ColorRed    = lipgloss.Color("196")
	ColorGreen  = lipgloss.Color("#49E209")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.BorderForeground(ColorBlue)

	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)

	helpStyle = lipgloss.NewStyle().Foreground(ColorGray)

	activeEntryStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	cursorEntryStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)

	noResultsStyle = lipgloss.NewStyle().Foreground(ColorRed).Italic(true)
)
