package ui

import (
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"

	"tabdeck/internal/content"
)

// pageCache holds the raw markdown body per tab and memoizes rendered
// output for the current theme and wrap width.
type pageCache struct {
	raw      map[string]string
	rendered map[string]string
	theme    string
	width    int
}

func newPageCache(pages []content.Page, theme string) *pageCache {
	raw := make(map[string]string, len(pages))
	for _, p := range pages {
		raw[p.ID] = p.Body
	}
	return &pageCache{
		raw:      raw,
		rendered: make(map[string]string),
		theme:    theme,
	}
}

// invalidate drops memoized output, e.g. after a resize or theme change.
func (c *pageCache) invalidate(theme string, width int) {
	c.theme = theme
	c.width = width
	c.rendered = make(map[string]string)
}

// render returns the page body for id rendered for the terminal. Unknown
// ids get an empty-state hint; on a renderer error the raw markdown is
// shown instead.
func (c *pageCache) render(id string) string {
	if out, ok := c.rendered[id]; ok {
		return out
	}
	body, ok := c.raw[id]
	if !ok {
		return Styles.Empty.Render("no content for " + id)
	}
	r, err := newRenderer(c.theme, c.width)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	c.rendered[id] = out
	return out
}

func newRenderer(theme string, width int) (*glamour.TermRenderer, error) {
	var opts []glamour.TermRendererOption
	switch theme {
	case "light":
		opts = append(opts, glamour.WithStandardStyle(styles.LightStyle))
	case "notty":
		opts = append(opts, glamour.WithStandardStyle(styles.NoTTYStyle))
	case "auto":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(styles.DarkStyle))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}
