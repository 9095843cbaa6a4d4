package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset this view uses.
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	pendingStyle = lipgloss.NewStyle().Foreground(colorInfo)
	resultStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Foreground(colorFocus)
)

// aqiColor grades the 1-5 index from green to red.
func aqiColor(aqi int) lipgloss.Color {
	switch {
	case aqi <= 0:
		return colorOverlay1
	case aqi <= 2:
		return colorGreen
	case aqi == 3:
		return colorWarning
	default:
		return colorError
	}
}
