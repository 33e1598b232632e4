package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func ansiStripped(s string) string {
	return ansi.Strip(s)
}

func TestHighlighterKeepsText(t *testing.T) {
	h := NewHighlighter("dracula", true)
	assert.True(t, h.Enabled("main.go"))

	line := `func main() { fmt.Println("hi") }`
	got := h.Line("main.go", line)
	assert.Equal(t, line, ansiStripped(got))
	assert.NotContains(t, got, "\n")
}

func TestHighlighterPassThrough(t *testing.T) {
	h := NewHighlighter("no-such-style", false)
	assert.False(t, h.Enabled("main.go"))
	assert.Equal(t, "x := 1", h.Line("main.go", "x := 1"))

	var nilH *Highlighter
	assert.Equal(t, "plain", nilH.Line("a.go", "plain"))

	h = NewHighlighter("monokai", true)
	assert.False(t, h.Enabled(""))
	assert.False(t, h.Enabled("data.unknownext"))
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, isMarkdown("README.md"))
	assert.True(t, isMarkdown("/x/notes.MARKDOWN"))
	assert.False(t, isMarkdown("main.go"))
	assert.False(t, isMarkdown(""))
}

func TestMarkdownRendererCachesByWidth(t *testing.T) {
	r := &markdownRenderer{}
	out, err := r.render("# Title\n\nbody", 40)
	assert.NoError(t, err)
	assert.Contains(t, ansiStripped(out), "Title")
	first := r.renderer

	_, err = r.render("again", 40)
	assert.NoError(t, err)
	assert.Same(t, first, r.renderer)

	_, err = r.render("again", 60)
	assert.NoError(t, err)
	assert.NotSame(t, first, r.renderer)
}
