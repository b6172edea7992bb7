package nav

import (
	"errors"
	"testing"

	"tabdeck/internal/event"
)

type fakeHost struct {
	w, h int
}

func (f fakeHost) Size() (int, int) { return f.w, f.h }

func addTabs(t *testing.T, m *Manager, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := m.AddTab(TabSpec{ID: id, Label: id}); err != nil {
			t.Fatalf("AddTab(%q) failed: %v", id, err)
		}
	}
}

func TestAddTabKeepsInsertionOrder(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general", "content", "comments")

	want := []string{"general", "content", "comments"}
	got := m.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() returned %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if m.Active() != "" {
		t.Errorf("Active() = %q before any activation, want empty", m.Active())
	}
}

func TestAddTabDuplicateID(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general")

	_, err := m.AddTab(TabSpec{ID: "general"})
	var dup *DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("AddTab duplicate returned %v, want DuplicateIDError", err)
	}
	if dup.ID != "general" {
		t.Errorf("DuplicateIDError.ID = %q, want %q", dup.ID, "general")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d after rejected add, want 1", m.Len())
	}
}

func TestAddTabEmptyID(t *testing.T) {
	m := New(nil)
	_, err := m.AddTab(TabSpec{ID: "   "})
	var inv *InvalidStateError
	if !errors.As(err, &inv) {
		t.Fatalf("AddTab with blank id returned %v, want InvalidStateError", err)
	}
}

func TestAddTabDefaultsLabelToID(t *testing.T) {
	m := New(nil)
	tab, err := m.AddTab(TabSpec{ID: "media"})
	if err != nil {
		t.Fatalf("AddTab failed: %v", err)
	}
	if tab.Label != "media" {
		t.Errorf("Label = %q, want id fallback %q", tab.Label, "media")
	}
}

func TestBadgeKeysMirrorRegisteredTabs(t *testing.T) {
	tests := []struct {
		name   string
		specs  []TabSpec
		badges map[string]string
	}{
		{
			name:   "no badges",
			specs:  []TabSpec{{ID: "a"}, {ID: "b"}},
			badges: map[string]string{"a": "", "b": ""},
		},
		{
			name:   "mixed badges",
			specs:  []TabSpec{{ID: "a", Badge: "3"}, {ID: "b"}, {ID: "c", Badge: "new"}},
			badges: map[string]string{"a": "3", "b": "", "c": "new"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			for _, spec := range tt.specs {
				if _, err := m.AddTab(spec); err != nil {
					t.Fatalf("AddTab(%q) failed: %v", spec.ID, err)
				}
			}
			got := m.State().Badges
			if len(got) != len(tt.badges) {
				t.Fatalf("Badges has %d keys, want %d", len(got), len(tt.badges))
			}
			for id, want := range tt.badges {
				v, ok := got[id]
				if !ok {
					t.Errorf("Badges missing key %q", id)
					continue
				}
				if v != want {
					t.Errorf("Badges[%q] = %q, want %q", id, v, want)
				}
			}
		})
	}
}

func TestActivateSequenceLeavesLastActive(t *testing.T) {
	rec := event.NewRecorder()
	m := New(rec)
	addTabs(t, m, "general", "content")

	if err := m.Activate("general"); err != nil {
		t.Fatalf("Activate(general) failed: %v", err)
	}
	if err := m.Activate("content"); err != nil {
		t.Fatalf("Activate(content) failed: %v", err)
	}

	if got := m.State().ActiveTab; got != "content" {
		t.Errorf("ActiveTab = %q, want %q", got, "content")
	}

	acts := rec.EventsFor(TopicActivated)
	if len(acts) != 2 {
		t.Fatalf("recorded %d activations, want 2", len(acts))
	}
	first := acts[0].Payload.(Activated)
	second := acts[1].Payload.(Activated)
	if first.TabID != "general" || first.PrevID != "" {
		t.Errorf("first activation = %+v, want general from empty", first)
	}
	if second.TabID != "content" || second.PrevID != "general" {
		t.Errorf("second activation = %+v, want content from general", second)
	}
}

func TestActivateUnknownLeavesStateUntouched(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general", "content")
	if err := m.Activate("general"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	err := m.Activate("generl")
	var unknown *UnknownTabError
	if !errors.As(err, &unknown) {
		t.Fatalf("Activate(generl) returned %v, want UnknownTabError", err)
	}
	if unknown.Suggestion != "general" {
		t.Errorf("Suggestion = %q, want %q", unknown.Suggestion, "general")
	}
	if got := m.Active(); got != "general" {
		t.Errorf("Active() = %q after failed activation, want %q", got, "general")
	}
}

func TestActivateWithoutTabs(t *testing.T) {
	m := New(nil)
	err := m.Activate("anything")
	var inv *InvalidStateError
	if !errors.As(err, &inv) {
		t.Fatalf("Activate on empty manager returned %v, want InvalidStateError", err)
	}
}

func TestActivateCurrentTabEmitsNothing(t *testing.T) {
	rec := event.NewRecorder()
	m := New(rec)
	addTabs(t, m, "general")

	if err := m.Activate("general"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := m.Activate("general"); err != nil {
		t.Fatalf("re-Activate failed: %v", err)
	}
	if got := len(rec.EventsFor(TopicActivated)); got != 1 {
		t.Errorf("recorded %d activations, want 1", got)
	}
}

func TestSetBadgeReflectedInState(t *testing.T) {
	rec := event.NewRecorder()
	m := New(rec)
	addTabs(t, m, "comments")

	if err := m.SetBadge("comments", "7"); err != nil {
		t.Fatalf("SetBadge failed: %v", err)
	}
	if got := m.State().Badges["comments"]; got != "7" {
		t.Errorf("badge = %q, want %q", got, "7")
	}

	// Clearing keeps the key, drops the value.
	if err := m.SetBadge("comments", ""); err != nil {
		t.Fatalf("SetBadge clear failed: %v", err)
	}
	v, ok := m.State().Badges["comments"]
	if !ok || v != "" {
		t.Errorf("cleared badge = (%q, %v), want empty present", v, ok)
	}

	var unknown *UnknownTabError
	if err := m.SetBadge("nope", "1"); !errors.As(err, &unknown) {
		t.Errorf("SetBadge unknown returned %v, want UnknownTabError", err)
	}

	updates := rec.EventsFor(TopicBadgeUpdated)
	if len(updates) != 2 {
		t.Fatalf("recorded %d badge updates, want 2", len(updates))
	}
	if p := updates[1].Payload.(BadgeUpdated); p.Value != "" {
		t.Errorf("clear event value = %q, want empty", p.Value)
	}
}

func TestSetBadgeSameValueEmitsNothing(t *testing.T) {
	rec := event.NewRecorder()
	m := New(rec)
	addTabs(t, m, "comments")

	if err := m.SetBadge("comments", "2"); err != nil {
		t.Fatalf("SetBadge failed: %v", err)
	}
	if err := m.SetBadge("comments", "2"); err != nil {
		t.Fatalf("repeat SetBadge failed: %v", err)
	}
	if got := len(rec.EventsFor(TopicBadgeUpdated)); got != 1 {
		t.Errorf("recorded %d badge updates, want 1", got)
	}
}

func TestMountIsIdempotent(t *testing.T) {
	m := New(nil)
	c1, err := m.Mount(fakeHost{w: 100, h: 30})
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if c1.ID == "" {
		t.Error("container ID is empty")
	}
	c2, err := m.Mount(fakeHost{w: 50, h: 20})
	if err != nil {
		t.Fatalf("second Mount failed: %v", err)
	}
	if c1 != c2 {
		t.Error("second Mount returned a different container")
	}
}

func TestMountNilHost(t *testing.T) {
	m := New(nil)
	var inv *InvalidStateError
	if _, err := m.Mount(nil); !errors.As(err, &inv) {
		t.Fatalf("Mount(nil) returned %v, want InvalidStateError", err)
	}
}

func TestMountWiresResizeEvents(t *testing.T) {
	bus := event.NewDispatcher()
	m := New(bus)
	addTabs(t, m, "general")
	if _, err := m.Mount(fakeHost{w: 100, h: 30}); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if m.State().Collapsed {
		t.Fatal("Collapsed = true at width 100")
	}

	bus.Publish(TopicResize, Resize{Width: 48, Height: 30})
	if !m.State().Collapsed {
		t.Error("Collapsed = false after narrow resize event")
	}
	if got := m.Width(); got != 48 {
		t.Errorf("Width() = %d, want 48", got)
	}
}

func TestCloseFreezesState(t *testing.T) {
	bus := event.NewDispatcher()
	m := New(bus)
	addTabs(t, m, "general", "content")
	if _, err := m.Mount(fakeHost{w: 100, h: 30}); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if err := m.Activate("content"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	before := m.State()

	// Events after Close must not reach the manager.
	bus.Publish(TopicResize, Resize{Width: 30, Height: 10})
	after := m.State()
	if after.Collapsed != before.Collapsed || after.Width != before.Width {
		t.Errorf("state moved after Close: %+v -> %+v", before, after)
	}
	if after.ActiveTab != "content" {
		t.Errorf("ActiveTab = %q after Close, want %q", after.ActiveTab, "content")
	}

	var inv *InvalidStateError
	if _, err := m.AddTab(TabSpec{ID: "x"}); !errors.As(err, &inv) {
		t.Errorf("AddTab after Close returned %v, want InvalidStateError", err)
	}
	if err := m.Activate("general"); !errors.As(err, &inv) {
		t.Errorf("Activate after Close returned %v, want InvalidStateError", err)
	}
	if err := m.SetBadge("general", "1"); !errors.As(err, &inv) {
		t.Errorf("SetBadge after Close returned %v, want InvalidStateError", err)
	}

	if err := m.Close(); err != nil {
		t.Errorf("second Close returned %v, want nil", err)
	}
	if bus.SubscriberCount(TopicResize) != 0 {
		t.Error("resize subscription survived Close")
	}
}

func TestMountAfterClose(t *testing.T) {
	m := New(nil)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	var inv *InvalidStateError
	if _, err := m.Mount(fakeHost{w: 80, h: 24}); !errors.As(err, &inv) {
		t.Fatalf("Mount after Close returned %v, want InvalidStateError", err)
	}
}

func TestSuggestionOnlyWithinEditDistance(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general", "media")

	err := m.Activate("zzzzzzzz")
	var unknown *UnknownTabError
	if !errors.As(err, &unknown) {
		t.Fatalf("Activate returned %v, want UnknownTabError", err)
	}
	if unknown.Suggestion != "" {
		t.Errorf("Suggestion = %q for gibberish id, want empty", unknown.Suggestion)
	}
}
