package terminal

import "github.com/charmbracelet/lipgloss"

var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD75F")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorCyan    = lipgloss.Color("#5FD7FF")
	ColorMagenta = lipgloss.Color("#D787FF")
	ColorGray    = lipgloss.Color("#808080")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	TranscriptTitleStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	DocumentTitleStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Bold(true)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
