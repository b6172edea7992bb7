// Package watch monitors the config file and announces real content
// changes on the bus. Subscribers decide what reloading means.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tabdeck/internal/debounce"
	"tabdeck/internal/event"
)

// TopicConfigChanged is published when the watched file's content hash
// moved. Editor save storms and no-op touches never reach the bus.
const TopicConfigChanged = "config.changed"

// ConfigChanged is the TopicConfigChanged payload. OldHash is empty when
// the file did not exist at Start.
type ConfigChanged struct {
	Path    string
	OldHash string
	NewHash string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period applied to file event bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the watcher's logger. The default discards, since
// watchers usually run under a TUI that owns the terminal.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher monitors one file for content changes. It watches the containing
// directory, not the file, so atomic saves (write temp, rename over) keep
// working after the inode is swapped.
type Watcher struct {
	path   string
	bus    event.Bus
	logger *slog.Logger
	delay  time.Duration

	fsw      *fsnotify.Watcher
	deb      *debounce.Debouncer
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu       sync.Mutex
	lastHash string
}

// New creates a Watcher for path that publishes on bus. Call Start to
// begin watching.
func New(path string, bus event.Bus, opts ...Option) *Watcher {
	w := &Watcher{
		path:   path,
		bus:    bus,
		logger: slog.New(slog.DiscardHandler),
		delay:  400 * time.Millisecond,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start records the current content hash and begins watching. A missing
// file is fine; its later creation counts as a change.
func (w *Watcher) Start() error {
	w.lastHash = fileHash(w.path)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: create fsnotify: %w", err)
	}
	w.fsw = fsw

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("config watch: watch %s: %w", dir, err)
	}

	w.deb = debounce.New(w.delay, w.checkChanged)
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and waits for the goroutine to exit. Safe to
// call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		if w.deb != nil {
			w.deb.Stop()
		}
		if w.fsw != nil {
			err = w.fsw.Close()
		}
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Any write, create or rename in the directory schedules a
			// hash check; the hash guard filters out unrelated files and
			// unchanged content.
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.deb.Trigger()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) checkChanged() {
	newHash := fileHash(w.path)

	w.mu.Lock()
	old := w.lastHash
	if newHash == old {
		w.mu.Unlock()
		return
	}
	w.lastHash = newHash
	w.mu.Unlock()

	w.logger.Info("config changed", "path", w.path)
	w.bus.Publish(TopicConfigChanged, ConfigChanged{Path: w.path, OldHash: old, NewHash: newHash})
}

// fileHash returns the sha256 of the file content, or empty when the file
// cannot be read.
func fileHash(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
