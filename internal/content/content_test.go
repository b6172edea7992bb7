package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDirParsesFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "comments.md", `---
id: comments
title: Comments
badge: "3"
order: 2
---
# Comments

Pending moderation queue.`)
	writePage(t, dir, "general.md", `---
id: general
title: General
order: 1
---
Site settings.`)

	pages, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	// order fields dominate file name order
	assert.Equal(t, "general", pages[0].ID)
	assert.Equal(t, "comments", pages[1].ID)
	assert.Equal(t, "Comments", pages[1].Title)
	assert.Equal(t, "3", pages[1].Badge)
	assert.Contains(t, pages[1].Body, "Pending moderation")
	assert.NotContains(t, pages[1].Body, "---", "frontmatter leaked into body")
}

func TestLoadDirDerivesIDFromFileName(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "Site Health.md", "No frontmatter here, just prose.")

	pages, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, "site-health", pages[0].ID)
	assert.Equal(t, "site-health", pages[0].Title)
	assert.Equal(t, "No frontmatter here, just prose.", pages[0].Body)
}

func TestLoadDirSkipsNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "page.md", "body")
	writePage(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	pages, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestLoadDirRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "a.md", "---\nid: general\n---\nfirst")
	writePage(t, dir, "b.md", "---\nid: general\n---\nsecond")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate page id")
	assert.Contains(t, err.Error(), "general")
}

func TestLoadDirMissingDir(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestSpecs(t *testing.T) {
	specs := Specs([]Page{
		{ID: "general", Title: "General", Body: "body", Badge: ""},
		{ID: "comments", Title: "Comments", Body: "queue", Badge: "3"},
	})
	require.Len(t, specs, 2)
	assert.Equal(t, "general", specs[0].ID)
	assert.Equal(t, "Comments", specs[1].Label)
	assert.Equal(t, "queue", specs[1].Content)
	assert.Equal(t, "3", specs[1].Badge)
}

func TestDefaultPages(t *testing.T) {
	pages := Default()
	require.NotEmpty(t, pages)

	seen := map[string]bool{}
	for _, p := range pages {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Body)
		assert.False(t, seen[p.ID], "duplicate id %q", p.ID)
		seen[p.ID] = true
	}
	for i := 1; i < len(pages); i++ {
		assert.LessOrEqual(t, pages[i-1].Order, pages[i].Order, "pages out of order")
	}
	assert.True(t, seen["general"])
	assert.True(t, seen["comments"])
}
