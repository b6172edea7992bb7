package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tabdeck/internal/debounce"
	"tabdeck/internal/event"
	"tabdeck/internal/nav"
)

// config holds the parsed CLI configuration for a tabcheck run.
type config struct {
	list    bool
	verbose bool
}

func parseFlags() config {
	var cfg config

	flag.BoolVar(&cfg.list, "list", false, "list scenarios without running them")
	flag.BoolVar(&cfg.verbose, "verbose", false, "print per-step detail while scenarios run")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tabcheck [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Tabcheck runs the tab navigation contract headlessly: registration,\n")
		fmt.Fprintf(os.Stderr, "activation, traversal, badges, layout collapse, debounce and shutdown.\n")
		fmt.Fprintf(os.Stderr, "One PASS/FAIL line per scenario; exit 1 when any scenario fails.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg
}

// scenario is one named check run against the real packages.
type scenario struct {
	name string
	desc string
	run  func(*checkContext) error
}

var scenarios = []scenario{
	{"registry-badges", "State().Badges keys mirror the added tab ids", checkRegistryBadges},
	{"activation-events", "activate A then B leaves B active and publishes both transitions", checkActivationEvents},
	{"traversal-wrap", "next wraps last to first, prev wraps first to last", checkTraversalWrap},
	{"badge-updates", "badge values land in state and on the bus", checkBadgeUpdates},
	{"error-kinds", "duplicate, unknown and closed operations fail with typed errors", checkErrorKinds},
	{"responsive-collapse", "bar collapses below the breakpoint and announces each flip once", checkResponsiveCollapse},
	{"debounce-coalesce", "three triggers inside the window run the function once", checkDebounceCoalesce},
	{"close-noop", "after Close the bus is ignored and Close is idempotent", checkCloseNoop},
}

// checkContext gives each scenario a fresh recording bus.
type checkContext struct {
	bus     *event.Recorder
	verbose bool
}

func (c *checkContext) logf(format string, args ...any) {
	if c.verbose {
		fmt.Printf("    "+format+"\n", args...)
	}
}

// manager builds a Manager on the recording bus, mounted when a host is given.
func (c *checkContext) manager(host *fakeHost, opts ...nav.Option) (*nav.Manager, error) {
	m := nav.New(c.bus, opts...)
	if host != nil {
		if _, err := m.Mount(host); err != nil {
			return nil, fmt.Errorf("mount: %w", err)
		}
	}
	return m, nil
}

// fakeHost is a fixed-size nav.Host standing in for the TUI.
type fakeHost struct {
	width, height int
}

func (h *fakeHost) Size() (int, int) { return h.width, h.height }

func checkRegistryBadges(c *checkContext) error {
	tabs, err := c.manager(nil)
	if err != nil {
		return err
	}
	ids := []string{"posts", "media", "comments"}
	for _, id := range ids {
		if _, err := tabs.AddTab(nav.TabSpec{ID: id}); err != nil {
			return fmt.Errorf("add %s: %v", id, err)
		}
	}
	badges := tabs.State().Badges
	if len(badges) != len(ids) {
		return fmt.Errorf("badge keys = %d, want %d", len(badges), len(ids))
	}
	for _, id := range ids {
		if _, ok := badges[id]; !ok {
			return fmt.Errorf("badge key %q missing", id)
		}
	}
	c.logf("%d tabs registered, badge key set matches", len(ids))
	return nil
}

func checkActivationEvents(c *checkContext) error {
	tabs, err := c.manager(nil)
	if err != nil {
		return err
	}
	for _, id := range []string{"alpha", "beta"} {
		if _, err := tabs.AddTab(nav.TabSpec{ID: id}); err != nil {
			return err
		}
	}
	if err := tabs.Activate("alpha"); err != nil {
		return err
	}
	if err := tabs.Activate("beta"); err != nil {
		return err
	}
	if got := tabs.Active(); got != "beta" {
		return fmt.Errorf("active = %q, want beta", got)
	}

	events := c.bus.EventsFor(nav.TopicActivated)
	if len(events) != 2 {
		return fmt.Errorf("%d activated events, want 2", len(events))
	}
	last, ok := events[1].Payload.(nav.Activated)
	if !ok || last.TabID != "beta" || last.PrevID != "alpha" {
		return fmt.Errorf("last transition = %+v, want alpha->beta", events[1].Payload)
	}

	// Re-activating the active tab is silent.
	if err := tabs.Activate("beta"); err != nil {
		return err
	}
	if n := len(c.bus.EventsFor(nav.TopicActivated)); n != 2 {
		return fmt.Errorf("re-activation published an event (%d total)", n)
	}
	c.logf("transitions: ->alpha, alpha->beta, re-activation silent")
	return nil
}

func checkTraversalWrap(c *checkContext) error {
	tabs, err := c.manager(nil)
	if err != nil {
		return err
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, err := tabs.AddTab(nav.TabSpec{ID: id}); err != nil {
			return err
		}
	}
	if err := tabs.Activate("a"); err != nil {
		return err
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	for i, want := range []string{"b", "c", "a"} {
		consumed, err := tabs.HandleKey(right, "")
		if err != nil {
			return fmt.Errorf("next %d: %v", i, err)
		}
		if !consumed {
			return fmt.Errorf("next %d: key not consumed", i)
		}
		if got := tabs.Active(); got != want {
			return fmt.Errorf("next %d: active = %q, want %q", i, got, want)
		}
	}
	c.logf("next from c wrapped to a")

	if _, err := tabs.HandleKey(left, ""); err != nil {
		return err
	}
	if got := tabs.Active(); got != "c" {
		return fmt.Errorf("prev from a: active = %q, want c", got)
	}
	c.logf("prev from a wrapped to c")
	return nil
}

func checkBadgeUpdates(c *checkContext) error {
	tabs, err := c.manager(nil)
	if err != nil {
		return err
	}
	if _, err := tabs.AddTab(nav.TabSpec{ID: "inbox"}); err != nil {
		return err
	}
	if err := tabs.SetBadge("inbox", "12"); err != nil {
		return err
	}
	if got := tabs.State().Badges["inbox"]; got != "12" {
		return fmt.Errorf("badge = %q, want 12", got)
	}
	events := c.bus.EventsFor(nav.TopicBadgeUpdated)
	if len(events) != 1 {
		return fmt.Errorf("%d badge events, want 1", len(events))
	}
	if p, ok := events[0].Payload.(nav.BadgeUpdated); !ok || p.TabID != "inbox" || p.Value != "12" {
		return fmt.Errorf("badge payload = %+v", events[0].Payload)
	}

	// Empty value clears
	if err := tabs.SetBadge("inbox", ""); err != nil {
		return err
	}
	if got := tabs.State().Badges["inbox"]; got != "" {
		return fmt.Errorf("badge after clear = %q", got)
	}

	var unknown *nav.UnknownTabError
	if err := tabs.SetBadge("ghost", "1"); !errors.As(err, &unknown) {
		return fmt.Errorf("unknown id error = %v, want UnknownTabError", err)
	}
	c.logf("set, cleared, unknown rejected")
	return nil
}

func checkErrorKinds(c *checkContext) error {
	tabs, err := c.manager(nil)
	if err != nil {
		return err
	}
	if _, err := tabs.AddTab(nav.TabSpec{ID: "posts"}); err != nil {
		return err
	}

	var dup *nav.DuplicateIDError
	if _, err := tabs.AddTab(nav.TabSpec{ID: "posts"}); !errors.As(err, &dup) {
		return fmt.Errorf("duplicate add error = %v, want DuplicateIDError", err)
	}

	var unknown *nav.UnknownTabError
	if err := tabs.Activate("postz"); !errors.As(err, &unknown) {
		return fmt.Errorf("unknown activate error = %v, want UnknownTabError", err)
	}
	if unknown.Suggestion != "posts" {
		return fmt.Errorf("suggestion = %q, want posts", unknown.Suggestion)
	}
	c.logf("postz suggested %q", unknown.Suggestion)

	if err := tabs.Close(); err != nil {
		return err
	}
	var invalid *nav.InvalidStateError
	if _, err := tabs.AddTab(nav.TabSpec{ID: "late"}); !errors.As(err, &invalid) {
		return fmt.Errorf("closed add error = %v, want InvalidStateError", err)
	}
	return nil
}

func checkResponsiveCollapse(c *checkContext) error {
	host := &fakeHost{width: 100, height: 40}
	tabs, err := c.manager(host, nav.WithBreakpoint(80))
	if err != nil {
		return err
	}
	if _, err := tabs.AddTab(nav.TabSpec{ID: "home"}); err != nil {
		return err
	}
	if tabs.State().Collapsed {
		return fmt.Errorf("collapsed at width 100, breakpoint 80")
	}

	c.bus.Publish(nav.TopicResize, nav.Resize{Width: 60, Height: 40})
	if !tabs.State().Collapsed {
		return fmt.Errorf("not collapsed at width 60")
	}
	flips := c.bus.EventsFor(nav.TopicLayoutChanged)
	if len(flips) != 1 {
		return fmt.Errorf("%d layout events after collapse, want 1", len(flips))
	}
	if p, ok := flips[0].Payload.(nav.LayoutChanged); !ok || p.Mode != nav.ModeCompact || p.Width != 60 {
		return fmt.Errorf("layout payload = %+v", flips[0].Payload)
	}

	// Shrinking further inside compact is not a flip.
	c.bus.Publish(nav.TopicResize, nav.Resize{Width: 55, Height: 40})
	if n := len(c.bus.EventsFor(nav.TopicLayoutChanged)); n != 1 {
		return fmt.Errorf("%d layout events after same-mode resize, want 1", n)
	}

	c.bus.Publish(nav.TopicResize, nav.Resize{Width: 90, Height: 40})
	if tabs.State().Collapsed {
		return fmt.Errorf("still collapsed at width 90")
	}
	if n := len(c.bus.EventsFor(nav.TopicLayoutChanged)); n != 2 {
		return fmt.Errorf("%d layout events after expand, want 2", n)
	}
	c.logf("full@100 -> compact@60 -> compact@55 (silent) -> full@90")
	return nil
}

func checkDebounceCoalesce(c *checkContext) error {
	var calls atomic.Int32
	d := debounce.New(25*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	for i := 0; i < 3; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		return fmt.Errorf("%d calls after 3 triggers, want 1", got)
	}

	// Triggers after Stop never fire.
	d.Stop()
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		return fmt.Errorf("%d calls after stopped trigger, want 1", got)
	}
	c.logf("3 triggers coalesced, post-stop trigger ignored")
	return nil
}

func checkCloseNoop(c *checkContext) error {
	host := &fakeHost{width: 100, height: 40}
	tabs, err := c.manager(host)
	if err != nil {
		return err
	}
	for _, id := range []string{"home", "docs"} {
		if _, err := tabs.AddTab(nav.TabSpec{ID: id}); err != nil {
			return err
		}
	}
	if err := tabs.Activate("home"); err != nil {
		return err
	}

	before := tabs.State()
	if err := tabs.Close(); err != nil {
		return err
	}

	c.bus.Publish(nav.TopicResize, nav.Resize{Width: 50, Height: 40})
	if after := tabs.State(); !reflect.DeepEqual(before, after) {
		return fmt.Errorf("state changed after Close: %+v -> %+v", before, after)
	}

	if err := tabs.Close(); err != nil {
		return fmt.Errorf("second Close: %v", err)
	}

	var invalid *nav.InvalidStateError
	if _, err := tabs.HandleKey(tea.KeyMsg{Type: tea.KeyRight}, ""); !errors.As(err, &invalid) {
		return fmt.Errorf("closed HandleKey error = %v, want InvalidStateError", err)
	}
	c.logf("resize ignored, second Close nil, keys rejected")
	return nil
}

func run(cfg config) error {
	if cfg.list {
		for _, s := range scenarios {
			fmt.Printf("%-22s %s\n", s.name, s.desc)
		}
		return nil
	}

	failed := 0
	for _, s := range scenarios {
		c := &checkContext{bus: event.NewRecorder(), verbose: cfg.verbose}
		if err := s.run(c); err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", s.name, err)
			continue
		}
		fmt.Printf("PASS %s\n", s.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	fmt.Printf("ok: %d scenarios\n", len(scenarios))
	return nil
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tabcheck: %v\n", err)
		os.Exit(1)
	}
}
