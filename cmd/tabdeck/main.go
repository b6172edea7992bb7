package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tabdeck/internal/config"
	"tabdeck/internal/content"
	"tabdeck/internal/event"
	"tabdeck/internal/nav"
	"tabdeck/internal/session"
	"tabdeck/internal/telemetry"
	"tabdeck/internal/ui"
	"tabdeck/internal/watch"
)

// flags holds the parsed CLI configuration for a tabdeck run.
type flags struct {
	configPath string
	contentDir string
}

func parseFlags() flags {
	var f flags

	flag.StringVar(&f.configPath, "config", "", "config file (default ~/.config/tabdeck/config.toml)")
	flag.StringVar(&f.contentDir, "content", "", "directory of markdown pages (overrides config)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tabdeck [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Tabdeck is a tabbed markdown viewer for the terminal: arrow keys\n")
		fmt.Fprintf(os.Stderr, "traverse tabs, SPC opens the command menu, ? shows all keys.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return f
}

// newLogger returns a file-backed slog logger when $TABDECK_LOG is set.
// The TUI owns the terminal, so logging is discarded otherwise.
func newLogger() *slog.Logger {
	path := os.Getenv("TABDECK_LOG")
	if path == "" {
		return slog.New(slog.DiscardHandler)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	if f.configPath != "" {
		os.Setenv("TABDECK_CONFIG", f.configPath)
	}
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.contentDir != "" {
		cfg.Content.Dir = f.contentDir
	}

	pages := content.Default()
	if cfg.Content.Dir != "" {
		pages, err = content.LoadDir(cfg.Content.Dir)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
	}

	bus := event.NewDispatcher()
	tabs := nav.New(bus,
		nav.WithBreakpoint(cfg.Nav.Breakpoint),
		nav.WithKeyMap(cfg.NavKeyMap()),
	)
	for _, spec := range content.Specs(pages) {
		if _, err := tabs.AddTab(spec); err != nil {
			return fmt.Errorf("register tab: %w", err)
		}
	}

	var tracker *session.Tracker
	if cfg.Session.Enabled {
		store, err := session.NewStore(cfg.Session.Dir)
		if err != nil {
			logger.Warn("session store unavailable", "error", err)
		} else {
			seed, restored := store.Load()
			tracker = session.NewTracker(store, bus, seed, cfg.Session.FlushDelay(),
				session.WithLogger(logger))
			if restored {
				session.Apply(seed, tabs)
			}
		}
	}

	// Visit telemetry stays inert unless OTEL_EXPORTER_OTLP_ENDPOINT is set.
	ctx := context.Background()
	exporter, err := telemetry.NewOTLPExporter(ctx)
	if err != nil {
		logger.Warn("otlp exporter init failed", "error", err)
	}
	visits := telemetry.NewRecorder(bus, cfg.Telemetry.MaxVisits, exporter)

	watcher := watch.New(config.Path(), bus, watch.WithLogger(logger))
	if err := watcher.Start(); err != nil {
		logger.Warn("config watch unavailable", "error", err)
	}

	app, err := ui.NewAppModel(ui.Options{
		Config:  cfg,
		Bus:     bus,
		Manager: tabs,
		Pages:   pages,
		Tracker: tracker,
		Visits:  visits,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen())
	_, runErr := p.Run()

	// Shutdown order: stop feeding the bus, then flush what is left.
	_ = watcher.Stop()
	app.Close()
	if tracker != nil {
		if err := tracker.Close(); err != nil {
			logger.Warn("session flush failed", "error", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := visits.Close(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown failed", "error", err)
	}

	return runErr
}
