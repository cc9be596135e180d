// Package tui provides the interactive terminal surface: forms for
// credentials and passenger details, a flight picker, and styled
// renderings of flights and bookings.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand palette.
const (
	colorPrimary   = lipgloss.Color("#8B6F47")
	colorSecondary = lipgloss.Color("#D4A574")
	colorTertiary  = lipgloss.Color("#5D4E37")
	colorText      = lipgloss.Color("#1F1F1F")
	colorMuted     = lipgloss.Color("#666666")
	colorError     = lipgloss.Color("#DC2626")
	colorSuccess   = lipgloss.Color("#16A34A")
)

// Styles contains lipgloss styles for the terminal output
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
	Border    lipgloss.Style
	Highlight lipgloss.Style
	Fare      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(colorTertiary).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(colorMuted),
		Value: lipgloss.NewStyle().
			Foreground(colorText),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
		Highlight: lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1),
		Fare: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
	}
}
