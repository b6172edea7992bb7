package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "243" // Darker gray - for separators
)

// Styles contains shared style definitions for the application chrome. The
// tab bar itself is styled by nav.Styles; these cover everything around it.
var Styles = struct {
	Title    lipgloss.Style // application name in the footer
	Status   lipgloss.Style // status line text
	ErrText  lipgloss.Style // error text in the status line
	Selected lipgloss.Style // highlighted keys in help views
	Muted    lipgloss.Style // hints and secondary text
	Normal   lipgloss.Style // normal text
	Empty    lipgloss.Style // placeholders for empty states
	HelpBox  lipgloss.Style // leader hint bar and help overlay frame
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	ErrText: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),
}
