package ui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown"
}

// markdownRenderer renders previews, rebuilding the glamour renderer only when the
// wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func (r *markdownRenderer) render(content string, width int) (string, error) {
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dracula"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.renderer = renderer
		r.width = width
	}
	return r.renderer.Render(content)
}
