package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tabdeck/internal/event"
)

func startWatcher(t *testing.T, path string, bus event.Bus) *Watcher {
	t.Helper()
	w := New(path, bus, WithDebounce(50*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitForChanges(t *testing.T, rec *event.Recorder, want int) []event.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if evs := rec.EventsFor(TopicConfigChanged); len(evs) >= want {
			return evs
		}
		time.Sleep(10 * time.Millisecond)
	}
	evs := rec.EventsFor(TopicConfigChanged)
	t.Fatalf("saw %d config changes, want %d within deadline", len(evs), want)
	return nil
}

func TestWatcherPublishesOnContentChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[nav]\nbreakpoint = 72\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	rec := event.NewRecorder()
	startWatcher(t, path, rec)

	if err := os.WriteFile(path, []byte("[nav]\nbreakpoint = 90\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	evs := waitForChanges(t, rec, 1)
	p := evs[0].Payload.(ConfigChanged)
	if p.Path != path {
		t.Errorf("Path = %q, want %q", p.Path, path)
	}
	if p.OldHash == "" || p.NewHash == "" || p.OldHash == p.NewHash {
		t.Errorf("hashes did not move: old=%q new=%q", p.OldHash, p.NewHash)
	}
}

func TestWatcherIgnoresUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := []byte("[ui]\ntheme = \"dark\"\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	rec := event.NewRecorder()
	startWatcher(t, path, rec)

	// Touch with identical bytes: event fires, hash does not move.
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("touch config: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if evs := rec.EventsFor(TopicConfigChanged); len(evs) != 0 {
		t.Fatalf("saw %d config changes for identical content, want 0", len(evs))
	}
}

func TestWatcherSeesLateFileCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	rec := event.NewRecorder()
	startWatcher(t, path, rec)

	if err := os.WriteFile(path, []byte("[session]\nenabled = false\n"), 0o644); err != nil {
		t.Fatalf("create config: %v", err)
	}

	evs := waitForChanges(t, rec, 1)
	p := evs[0].Payload.(ConfigChanged)
	if p.OldHash != "" {
		t.Errorf("OldHash = %q for late creation, want empty", p.OldHash)
	}
}

func TestWatcherSurvivesAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	rec := event.NewRecorder()
	startWatcher(t, path, rec)

	// Editor-style atomic save: write a sibling, rename it over the target.
	tmp := filepath.Join(dir, ".config.toml.swp")
	if err := os.WriteFile(tmp, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename over: %v", err)
	}

	waitForChanges(t, rec, 1)
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w := New(path, event.NewRecorder())
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop returned %v, want nil", err)
	}
}
