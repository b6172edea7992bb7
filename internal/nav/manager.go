package nav

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"tabdeck/internal/event"
)

// Manager owns the tab registry, the active pointer, badges, and the
// responsive presentation for one tab bar. It is not goroutine-safe: drive
// it from the host's update loop. The bus is shared by reference and never
// closed by the Manager; pass nil to get a private dispatcher.
type Manager struct {
	bus event.Bus

	tabs  []*Tab
	index map[string]*Tab
	// active is empty until the first activation. When non-empty it
	// always names a registered tab.
	active string

	breakpoint int
	width      int
	mode       Mode

	keymap KeyMap
	styles Styles

	container *Container
	resizeSub *event.Subscription
	closed    bool
}

// Option configures a Manager at construction.
type Option func(*Manager)

// WithBreakpoint overrides DefaultBreakpoint. Non-positive values are
// ignored.
func WithBreakpoint(cols int) Option {
	return func(m *Manager) {
		if cols > 0 {
			m.breakpoint = cols
		}
	}
}

// WithKeyMap overrides the traversal bindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Manager) { m.keymap = km }
}

// WithStyles overrides the render styles.
func WithStyles(s Styles) Option {
	return func(m *Manager) { m.styles = s }
}

// New returns an empty, unmounted Manager.
func New(bus event.Bus, opts ...Option) *Manager {
	if bus == nil {
		bus = event.NewDispatcher()
	}
	m := &Manager{
		bus:        bus,
		index:      make(map[string]*Tab),
		breakpoint: DefaultBreakpoint,
		keymap:     DefaultKeyMap(),
		styles:     DefaultStyles(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mount binds the Manager to a host surface: it captures the initial
// width, subscribes to TopicResize, and returns the render container.
// Mounting an already-mounted Manager returns the existing container;
// mounting after Close fails.
func (m *Manager) Mount(host Host) (*Container, error) {
	if m.closed {
		return nil, &InvalidStateError{Op: "mount", Reason: "manager is closed"}
	}
	if m.container != nil {
		return m.container, nil
	}
	if host == nil {
		return nil, &InvalidStateError{Op: "mount", Reason: "nil host"}
	}
	m.container = &Container{ID: uuid.NewString(), host: host, mgr: m}
	m.resizeSub = m.bus.Subscribe(TopicResize, m.onResize)
	w, _ := host.Size()
	m.SetWidth(w)
	return m.container, nil
}

func (m *Manager) onResize(ev event.Event) {
	if r, ok := ev.Payload.(Resize); ok {
		m.SetWidth(r.Width)
	}
}

// AddTab registers a tab at the end of the traversal order. The first
// addition does not activate anything; activation is always explicit.
func (m *Manager) AddTab(spec TabSpec) (*Tab, error) {
	if m.closed {
		return nil, &InvalidStateError{Op: "add tab", Reason: "manager is closed"}
	}
	if strings.TrimSpace(spec.ID) == "" {
		return nil, &InvalidStateError{Op: "add tab", Reason: "empty tab id"}
	}
	if _, ok := m.index[spec.ID]; ok {
		return nil, &DuplicateIDError{ID: spec.ID}
	}
	t := &Tab{ID: spec.ID, Label: spec.Label, Content: spec.Content, Badge: spec.Badge}
	if t.Label == "" {
		t.Label = t.ID
	}
	m.tabs = append(m.tabs, t)
	m.index[t.ID] = t
	m.bus.Publish(TopicTabAdded, TabAdded{TabID: t.ID, Index: len(m.tabs) - 1})
	return t, nil
}

// Activate moves the active pointer to id and publishes TopicActivated.
// Re-activating the current tab succeeds without publishing, so listeners
// only ever see real transitions.
func (m *Manager) Activate(id string) error {
	if m.closed {
		return &InvalidStateError{Op: "activate", Reason: "manager is closed"}
	}
	if len(m.tabs) == 0 {
		return &InvalidStateError{Op: "activate", Reason: "no tabs registered"}
	}
	t, ok := m.index[id]
	if !ok {
		return &UnknownTabError{ID: id, Suggestion: m.suggest(id)}
	}
	if m.active == t.ID {
		return nil
	}
	prev := m.active
	m.active = t.ID
	m.bus.Publish(TopicActivated, Activated{TabID: t.ID, PrevID: prev})
	return nil
}

// SetBadge stores a badge value for id; empty clears it. The key set of
// State().Badges is unaffected, it always mirrors the registered tabs.
func (m *Manager) SetBadge(id, value string) error {
	if m.closed {
		return &InvalidStateError{Op: "set badge", Reason: "manager is closed"}
	}
	t, ok := m.index[id]
	if !ok {
		return &UnknownTabError{ID: id, Suggestion: m.suggest(id)}
	}
	if t.Badge == value {
		return nil
	}
	t.Badge = value
	m.bus.Publish(TopicBadgeUpdated, BadgeUpdated{TabID: id, Value: value})
	return nil
}

// State returns a copy of the observable state. Valid after Close too; it
// then reports the final snapshot.
func (m *Manager) State() Snapshot {
	s := Snapshot{
		ActiveTab: m.active,
		Badges:    make(map[string]string, len(m.tabs)),
		Collapsed: m.mode == ModeCompact,
		Width:     m.width,
	}
	for _, t := range m.tabs {
		s.Badges[t.ID] = t.Badge
	}
	return s
}

// Active reports the active tab id, empty when none.
func (m *Manager) Active() string { return m.active }

// Len reports the number of registered tabs.
func (m *Manager) Len() int { return len(m.tabs) }

// IDs returns the registered tab ids in traversal order.
func (m *Manager) IDs() []string {
	out := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		out[i] = t.ID
	}
	return out
}

// Closed reports whether Close has run.
func (m *Manager) Closed() bool { return m.closed }

// Close cancels the resize subscription and releases the container. After
// Close, bus traffic is ignored, mutating calls fail with
// InvalidStateError, and State still serves the final snapshot. Calling
// Close again is a no-op.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.resizeSub != nil {
		m.resizeSub.Cancel()
		m.resizeSub = nil
	}
	m.container = nil
	return nil
}

// suggest returns the registered id nearest to id, within 3 edits.
func (m *Manager) suggest(id string) string {
	best := ""
	bestDist := 4
	for _, t := range m.tabs {
		if d := levenshtein.ComputeDistance(id, t.ID); d < bestDist {
			best, bestDist = t.ID, d
		}
	}
	return best
}
