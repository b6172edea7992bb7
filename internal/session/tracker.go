package session

import (
	"log/slog"
	"sync"
	"time"

	"tabdeck/internal/debounce"
	"tabdeck/internal/event"
	"tabdeck/internal/nav"
)

// Tracker mirrors navigation state from bus events and flushes it to the
// Store after a quiet period, so a burst of tab switches costs one write.
// It is the only writer of the session file while running.
type Tracker struct {
	store *Store
	log   *slog.Logger

	mu    sync.Mutex
	state State
	dirty bool

	flush *debounce.Debouncer
	subs  []*event.Subscription
	once  sync.Once
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger for flush failures. Default discards, since
// trackers usually run inside a TUI.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTracker seeds the tracker with seed, subscribes to the navigation
// topics on bus, and schedules a flush at most flushDelay after the last
// change. Close it to flush the tail.
func NewTracker(store *Store, bus event.Bus, seed State, flushDelay time.Duration, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
		log:   slog.New(slog.DiscardHandler),
		state: seed.clone(),
	}
	if t.state.Badges == nil {
		t.state.Badges = make(map[string]string)
	}
	for _, opt := range opts {
		opt(t)
	}
	t.flush = debounce.New(flushDelay, t.flushNow)
	t.subs = []*event.Subscription{
		bus.Subscribe(nav.TopicActivated, t.onActivated),
		bus.Subscribe(nav.TopicBadgeUpdated, t.onBadge),
		bus.Subscribe(nav.TopicLayoutChanged, t.onLayout),
	}
	return t
}

func (t *Tracker) onActivated(ev event.Event) {
	p, ok := ev.Payload.(nav.Activated)
	if !ok {
		return
	}
	t.mu.Lock()
	t.state.ActiveTab = p.TabID
	t.dirty = true
	t.mu.Unlock()
	t.flush.Trigger()
}

func (t *Tracker) onBadge(ev event.Event) {
	p, ok := ev.Payload.(nav.BadgeUpdated)
	if !ok {
		return
	}
	t.mu.Lock()
	if p.Value == "" {
		delete(t.state.Badges, p.TabID)
	} else {
		t.state.Badges[p.TabID] = p.Value
	}
	t.dirty = true
	t.mu.Unlock()
	t.flush.Trigger()
}

func (t *Tracker) onLayout(ev event.Event) {
	p, ok := ev.Payload.(nav.LayoutChanged)
	if !ok {
		return
	}
	t.mu.Lock()
	t.state.Collapsed = p.Mode == nav.ModeCompact
	t.dirty = true
	t.mu.Unlock()
	t.flush.Trigger()
}

// State returns a copy of the tracked state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// Flush writes the state now if anything changed since the last write.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	if !t.dirty {
		t.mu.Unlock()
		return nil
	}
	st := t.state.clone()
	st.SavedAt = time.Now()
	t.dirty = false
	t.mu.Unlock()

	if err := t.store.Save(st); err != nil {
		t.mu.Lock()
		t.dirty = true
		t.mu.Unlock()
		return err
	}
	return nil
}

func (t *Tracker) flushNow() {
	if err := t.Flush(); err != nil {
		t.log.Warn("session flush failed", "path", t.store.Path(), "err", err)
	}
}

// Close cancels the subscriptions, stops the debouncer and flushes any
// pending change. Safe to call twice.
func (t *Tracker) Close() error {
	var err error
	t.once.Do(func() {
		for _, sub := range t.subs {
			sub.Cancel()
		}
		t.flush.Stop()
		err = t.Flush()
	})
	return err
}

// Apply restores a saved state onto a manager: the active tab when it
// still exists, and badges for tabs that survived. Stale ids are skipped,
// never an error.
func Apply(st State, m *nav.Manager) {
	for id, v := range st.Badges {
		if v == "" {
			continue
		}
		_ = m.SetBadge(id, v)
	}
	if st.ActiveTab != "" {
		_ = m.Activate(st.ActiveTab)
	}
}
