package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorGood    = lipgloss.Color("#04B575")
	ColorError   = lipgloss.Color("#FF5F87")
	ColorSubtle  = lipgloss.Color("#767676")
	ColorBorder  = lipgloss.Color("#3C3C3C")
)

var (
	Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(ColorSubtle)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)

	Good   = lipgloss.NewStyle().Foreground(ColorGood)
	Bad    = lipgloss.NewStyle().Foreground(ColorError)
	Subtle = lipgloss.NewStyle().Foreground(ColorSubtle)
)
