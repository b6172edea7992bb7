package nav

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestViewFullShowsEveryTab(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general", "content", "comments")
	if err := m.Activate("content"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := m.SetBadge("comments", "3"); err != nil {
		t.Fatalf("SetBadge failed: %v", err)
	}
	m.SetWidth(100)

	got := ansi.Strip(m.View())
	for _, want := range []string{"general", "content", "comments", "(3)", "│"} {
		if !strings.Contains(got, want) {
			t.Errorf("full view missing %q in %q", want, got)
		}
	}
}

func TestViewCompactShowsOnlyCurrentTab(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general", "content", "comments")
	if err := m.Activate("content"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	m.SetWidth(40)

	got := ansi.Strip(m.View())
	if !strings.Contains(got, "content") {
		t.Errorf("compact view missing active label in %q", got)
	}
	if strings.Contains(got, "general") || strings.Contains(got, "comments") {
		t.Errorf("compact view leaks inactive labels: %q", got)
	}
	if !strings.Contains(got, "2/3") {
		t.Errorf("compact view missing position counter in %q", got)
	}
	if !strings.Contains(got, "‹") || !strings.Contains(got, "›") {
		t.Errorf("compact view missing traversal arrows in %q", got)
	}
}

func TestViewCompactIncludesBadge(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "comments", "media")
	if err := m.Activate("comments"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := m.SetBadge("comments", "12"); err != nil {
		t.Fatalf("SetBadge failed: %v", err)
	}
	m.SetWidth(40)

	got := ansi.Strip(m.View())
	if !strings.Contains(got, "(12)") {
		t.Errorf("compact view missing badge in %q", got)
	}
}

func TestViewCompactTruncatesLongLabel(t *testing.T) {
	m := New(nil)
	if _, err := m.AddTab(TabSpec{ID: "long", Label: strings.Repeat("sitehealth", 8)}); err != nil {
		t.Fatalf("AddTab failed: %v", err)
	}
	if err := m.Activate("long"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	m.SetWidth(30)

	got := ansi.Strip(m.View())
	if !strings.Contains(got, "…") {
		t.Errorf("compact view did not truncate long label: %q", got)
	}
}

func TestViewWithoutTabs(t *testing.T) {
	m := New(nil)
	got := ansi.Strip(m.View())
	if !strings.Contains(got, "no tabs") {
		t.Errorf("empty view = %q, want placeholder", got)
	}
}

func TestContainerView(t *testing.T) {
	m := New(nil)
	addTabs(t, m, "general")
	c, err := m.Mount(fakeHost{w: 90, h: 24})
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if c.View() == "" {
		t.Error("container View() is empty")
	}
	if w, h := c.Size(); w != 90 || h != 24 {
		t.Errorf("container Size() = (%d, %d), want (90, 24)", w, h)
	}

	var nilC *Container
	if nilC.View() != "" {
		t.Error("nil container View() should be empty")
	}
}
