package nav

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabdeck/internal/ui/textutil"
)

// Styles describes the lipgloss styling of the tab bar. The zero value
// renders unstyled text; DefaultStyles matches the stock palette.
type Styles struct {
	Bar         lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Separator   lipgloss.Style
	Badge       lipgloss.Style
	Counter     lipgloss.Style
	Empty       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Bar: lipgloss.NewStyle(),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Counter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
	}
}

// View renders the tab bar in the current presentation. Rendering reads
// state and never mutates it.
func (m *Manager) View() string {
	if len(m.tabs) == 0 {
		return m.styles.Empty.Render("no tabs")
	}
	if m.mode == ModeCompact {
		return m.viewCompact()
	}
	return m.viewFull()
}

// viewFull lays every tab out side by side: styled chips joined by │
// separators, badge counts in parentheses.
func (m *Manager) viewFull() string {
	parts := make([]string, 0, len(m.tabs))
	for _, t := range m.tabs {
		label := t.Label
		if t.Badge != "" {
			label += " " + m.styles.Badge.Render("("+t.Badge+")")
		}
		style := m.styles.InactiveTab
		if t.ID == m.active {
			style = m.styles.ActiveTab
		}
		parts = append(parts, style.Render(label))
	}
	bar := strings.Join(parts, m.styles.Separator.Render("│"))
	if m.width > 0 {
		return m.styles.Bar.Width(m.width).Render(bar)
	}
	return m.styles.Bar.Render(bar)
}

// viewCompact shows only the current tab with a position counter, for
// surfaces below the breakpoint: ‹ Label (3)  2/5 ›
func (m *Manager) viewCompact() string {
	cur := 0
	if m.active != "" {
		cur = m.indexOf(m.active)
	}
	t := m.tabs[cur]

	label := t.Label
	if t.Badge != "" {
		label = fmt.Sprintf("%s (%s)", label, t.Badge)
	}
	counter := fmt.Sprintf("%d/%d", cur+1, len(m.tabs))

	// Arrows, joins and chip padding claim a fixed share of the line.
	avail := m.width - textutil.Width(counter) - 7
	if avail > 0 {
		label = textutil.Truncate(label, avail)
	}

	style := m.styles.InactiveTab
	if t.ID == m.active {
		style = m.styles.ActiveTab
	}
	parts := []string{
		m.styles.Separator.Render("‹"),
		style.Render(label),
		m.styles.Counter.Render(counter),
		m.styles.Separator.Render("›"),
	}
	return m.styles.Bar.Render(strings.Join(parts, " "))
}
