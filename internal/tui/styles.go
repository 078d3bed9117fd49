package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	hoverFg   = lipgloss.Color("#FFA500")
	selectFg  = lipgloss.Color("#22D3EE")
	fillFg    = lipgloss.Color("#334155")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	toolStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	fillStyle   = lipgloss.NewStyle().Foreground(fillFg)
	edgeStyle   = lipgloss.NewStyle().Foreground(baseFg)
	selStyle    = lipgloss.NewStyle().Foreground(selectFg)
	handleStyle = lipgloss.NewStyle().Foreground(accentFg)
	activeStyle = lipgloss.NewStyle().Foreground(selectFg).Bold(true)
	hoverStyle  = lipgloss.NewStyle().Foreground(hoverFg)
)
