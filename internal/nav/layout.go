package nav

// Mode is the tab bar presentation.
type Mode int

const (
	// ModeFull lays every tab out side by side.
	ModeFull Mode = iota
	// ModeCompact shows only the current tab with a position counter,
	// used when the surface is narrower than the breakpoint.
	ModeCompact
)

func (m Mode) String() string {
	if m == ModeCompact {
		return "compact"
	}
	return "full"
}

// DefaultBreakpoint is the width, in terminal columns, below which the bar
// collapses to ModeCompact.
const DefaultBreakpoint = 72

// ModeForWidth returns the presentation for a surface width. Width 0 means
// the host has not reported a size yet and keeps the full layout.
func ModeForWidth(width, breakpoint int) Mode {
	if width > 0 && width < breakpoint {
		return ModeCompact
	}
	return ModeFull
}

// SetWidth records the host surface width and flips the presentation when
// it crosses the breakpoint. TopicLayoutChanged fires only on a flip;
// repeated widths on the same side of the breakpoint are no-ops. Ignored
// after Close.
func (m *Manager) SetWidth(width int) {
	if m.closed {
		return
	}
	m.width = width
	mode := ModeForWidth(width, m.breakpoint)
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.bus.Publish(TopicLayoutChanged, LayoutChanged{Mode: mode, Width: width})
}

// SetBreakpoint changes the collapse threshold and re-evaluates the
// current width against it, flipping the presentation if needed.
// Non-positive values are ignored, as is a closed Manager.
func (m *Manager) SetBreakpoint(cols int) {
	if m.closed || cols <= 0 || cols == m.breakpoint {
		return
	}
	m.breakpoint = cols
	m.SetWidth(m.width)
}

// Mode reports the current presentation.
func (m *Manager) Mode() Mode { return m.mode }

// Width reports the most recently recorded surface width.
func (m *Manager) Width() int { return m.width }

// Breakpoint reports the collapse threshold in columns.
func (m *Manager) Breakpoint() int { return m.breakpoint }
