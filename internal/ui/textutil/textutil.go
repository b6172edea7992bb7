// Package textutil provides unicode-aware measuring, truncation and
// padding for cells of TUI output. Widths are terminal columns, so CJK
// runes count as two and combining marks as zero.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the column width of an unstyled string.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// StyledWidth returns the column width of a string that may carry ANSI
// escape sequences.
func StyledWidth(s string) int {
	return lipgloss.Width(s)
}

// Truncate fits s into max columns, marking any cut with the ellipsis.
// max <= 0 yields the empty string.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, Ellipsis)
}

// PadRight extends s with spaces to exactly width columns, truncating when
// it is already wider.
func PadRight(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// PadLeft is PadRight with the spaces on the left.
func PadLeft(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return Truncate(s, width)
	}
	return runewidth.FillLeft(s, width)
}
