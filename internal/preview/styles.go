package preview

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Accent    = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	dimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	firedStyle = lipgloss.NewStyle().
			Foreground(Green)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)
)
