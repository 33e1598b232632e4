package ui

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colors individual lines for display. Lines are tokenised one at a
// time, so constructs spanning lines lose their color; this never affects text.
type Highlighter struct {
	enabled   bool
	style     *chroma.Style
	formatter chroma.Formatter

	path  string
	lexer chroma.Lexer
}

// NewHighlighter uses the named chroma style, falling back to monokai.
func NewHighlighter(styleName string, enabled bool) *Highlighter {
	style := styles.Get(styleName)
	if style == styles.Fallback {
		style = styles.Get("monokai")
	}

	return &Highlighter{
		enabled:   enabled,
		style:     style,
		formatter: formatters.Get("terminal256"),
	}
}

// Enabled reports whether lines for path will be colored.
func (h *Highlighter) Enabled(path string) bool {
	return h != nil && h.enabled && h.lexerFor(path) != nil
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	if path == h.path {
		return h.lexer
	}
	h.path = path

	h.lexer = nil
	if path == "" {
		return nil
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		lexer = lexers.Get(ext)
	}
	if lexer != nil {
		h.lexer = chroma.Coalesce(lexer)
	}
	return h.lexer
}

// Line returns line colored for path, or line unchanged when there is no lexer or
// formatting fails. The result never contains a newline.
func (h *Highlighter) Line(path, line string) string {
	if !h.Enabled(path) || line == "" {
		return line
	}

	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return line
	}
	return strings.ReplaceAll(buf.String(), "\n", "")
}
