// Package style defines the lipgloss styles used for terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminals
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1a1a6c", Dark: "#8f8fff"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00c853"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5252"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#8b5a00", Dark: "#ffb300"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#8a8a8a"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)
