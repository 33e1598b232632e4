package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"xedit/internal/document"
	"xedit/internal/editor"
)

// System clipboard access. On Linux it needs xclip, xsel or wl-clipboard.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

type clipboardOp int

const (
	clipCopy clipboardOp = iota
	clipCut
	clipPaste
)

type clipboardMsg struct {
	op       clipboardOp
	text     string
	revision uint64
	err      error
}

func copySelection(op clipboardOp, text string, revision uint64) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{op: op, text: text, revision: revision, err: writeClipboard(text)}
	}
}

func pasteClipboard() tea.Msg {
	text, err := readClipboard()
	return clipboardMsg{op: clipPaste, text: text, err: err}
}

// clipboardKey starts a copy, cut or paste. It reports false for any other key.
func (m Model) clipboardKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	doc := m.ctrl.Snapshot().Document
	op := clipCopy
	switch {
	case key.Matches(msg, m.keys.Paste):
		return m, pasteClipboard, true
	case key.Matches(msg, m.keys.Cut):
		op = clipCut
	case !key.Matches(msg, m.keys.Copy):
		return m, nil, false
	}

	text := doc.SelectedText()
	if text == "" {
		m.flash = "Nothing selected."
		return m, nil, true
	}
	return m, copySelection(op, text, doc.Revision()), true
}

func (m Model) clipboardDone(msg clipboardMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("clipboard unavailable", zap.Error(msg.err))
		m.flash = "Clipboard unavailable."
		return m, nil
	}

	doc := m.ctrl.Snapshot().Document
	switch msg.op {
	case clipCopy:
		m.flash = "Copied."
	case clipCut:
		// Only the selection that was copied gets deleted
		if doc.Revision() == msg.revision && doc.SelectedText() == msg.text {
			return m, m.send(editor.Edit{Action: document.Delete()})
		}
	case clipPaste:
		if msg.text != "" {
			return m, m.send(editor.Edit{Action: document.Insert(normalizeNewlines(msg.text))})
		}
	}
	return m, nil
}
