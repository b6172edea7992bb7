// Package content turns markdown pages into tab specs. Pages carry their
// tab metadata in YAML frontmatter (id, title, badge, order); the body
// becomes the tab content, rendered later by the UI.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"tabdeck/internal/nav"
)

// Page is one loaded markdown page.
type Page struct {
	ID    string
	Title string
	Badge string
	Order int
	Body  string
	// Path is the source file; empty for built-in pages.
	Path string
}

type meta struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Badge string `yaml:"badge"`
	Order int    `yaml:"order"`
}

// LoadDir reads every *.md file in dir, non-recursively. Pages sort by
// order, then id. Two pages claiming the same id is an error naming both
// files.
func LoadDir(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var pages []Page
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("duplicate page id %q in %s and %s", p.ID, prev, path)
		}
		seen[p.ID] = path
		pages = append(pages, p)
	}

	sortPages(pages)
	return pages, nil
}

func loadFile(path string) (Page, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("read page: %w", err)
	}

	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(b), &m)
	if err != nil {
		return Page{}, fmt.Errorf("parse frontmatter in %s: %w", filepath.Base(path), err)
	}

	p := Page{
		ID:    m.ID,
		Title: m.Title,
		Badge: m.Badge,
		Order: m.Order,
		Body:  strings.TrimSpace(string(body)),
		Path:  path,
	}
	if p.ID == "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		p.ID = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}
	if p.Title == "" {
		p.Title = p.ID
	}
	return p, nil
}

func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].ID < pages[j].ID
	})
}

// Specs converts pages into tab specs, preserving their order.
func Specs(pages []Page) []nav.TabSpec {
	out := make([]nav.TabSpec, len(pages))
	for i, p := range pages {
		out[i] = nav.TabSpec{ID: p.ID, Label: p.Title, Content: p.Body, Badge: p.Badge}
	}
	return out
}

// Default returns the built-in admin pages used when no content directory
// is configured.
func Default() []Page {
	pages := []Page{
		{
			ID:    "general",
			Title: "General",
			Order: 1,
			Body: `# General

Site identity, time zone and locale live here.

- **Title**: Demo Site
- **Tagline**: just another tabdeck panel`,
		},
		{
			ID:    "content",
			Title: "Content",
			Order: 2,
			Body: `# Content

Posts and pages at a glance.

| Type | Published | Drafts |
|------|-----------|--------|
| Post | 42 | 3 |
| Page | 11 | 1 |`,
		},
		{
			ID:    "comments",
			Title: "Comments",
			Badge: "3",
			Order: 3,
			Body: `# Comments

Three comments are waiting for moderation. Approve, trash, or mark as
spam from the moderation queue.`,
		},
		{
			ID:    "updates",
			Title: "Updates",
			Badge: "1",
			Order: 4,
			Body: `# Updates

One component has a pending update:

- tabdeck core 1.3 → 1.4`,
		},
		{
			ID:    "settings",
			Title: "Settings",
			Order: 5,
			Body: `# Settings

Navigation preferences. Edit the config file and the running panel picks
the change up; see the footer for the key bindings.`,
		},
	}
	sortPages(pages)
	return pages
}
