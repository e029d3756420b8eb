package tui

import "github.com/charmbracelet/lipgloss"

var (
	Fuchsia  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	Green    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	Red      = lipgloss.AdaptiveColor{Light: "#E53935", Dark: "#FF5F5F"}
	Gray     = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	DarkGray = lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"}

	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(Gray)
	currentPage   = lipgloss.NewStyle().Bold(true).Foreground(Fuchsia).Underline(true)
	otherPage     = lipgloss.NewStyle().Foreground(Gray)
	disabledStyle = lipgloss.NewStyle().Foreground(DarkGray)
	selectedRow   = lipgloss.NewStyle().Foreground(Fuchsia).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(Gray).Strikethrough(true)
	selectedDay   = lipgloss.NewStyle().Background(Fuchsia).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	todayStyle    = lipgloss.NewStyle().Foreground(Green).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(Green)
	errorStyle    = lipgloss.NewStyle().Foreground(Red)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(DarkGray).Padding(0, 1)
	pendingStyle  = lipgloss.NewStyle().Foreground(Gray).Italic(true)
)
