package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// fakeClipboard replaces the system clipboard for one test.
func fakeClipboard(t *testing.T, contents string, err error) *string {
	t.Helper()
	buf := contents
	oldWrite, oldRead := writeClipboard, readClipboard
	writeClipboard = func(s string) error {
		if err != nil {
			return err
		}
		buf = s
		return nil
	}
	readClipboard = func() (string, error) { return buf, err }
	t.Cleanup(func() { writeClipboard, readClipboard = oldWrite, oldRead })
	return &buf
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func TestCopySelection(t *testing.T) {
	clip := fakeClipboard(t, "", nil)
	m := newTestModel(t)
	m = press(m, runes("hello world"), keyOf(tea.KeyCtrlA), alt('c'))

	assert.Equal(t, "hello world", *clip)
	assert.Equal(t, "hello world", m.ctrl.Snapshot().Document.Text())
	assert.Equal(t, "Copied.", m.flash)
}

func TestCutSelection(t *testing.T) {
	clip := fakeClipboard(t, "", nil)
	m := newTestModel(t)
	m = press(m, runes("hello"), keyOf(tea.KeyShiftLeft), keyOf(tea.KeyShiftLeft), alt('x'))

	assert.Equal(t, "lo", *clip)
	assert.Equal(t, "hel", m.ctrl.Snapshot().Document.Text())
}

func TestCutSkippedWhenDocumentChanged(t *testing.T) {
	fakeClipboard(t, "", nil)
	m := newTestModel(t)
	m = press(m, runes("hello"), keyOf(tea.KeyCtrlA))
	rev := m.ctrl.Snapshot().Document.Revision()

	next, _ := m.Update(clipboardMsg{op: clipCut, text: "hello", revision: rev - 1})
	m = next.(Model)
	assert.Equal(t, "hello", m.ctrl.Snapshot().Document.Text())
}

func TestPasteNormalizesNewlines(t *testing.T) {
	fakeClipboard(t, "a\r\nb\rc", nil)
	m := newTestModel(t)
	m = press(m, keyOf(tea.KeyCtrlV))

	doc := m.ctrl.Snapshot().Document
	assert.Equal(t, "a\nb\nc", doc.Text())
	assert.True(t, doc.Dirty())
}

func TestCopyWithoutSelection(t *testing.T) {
	clip := fakeClipboard(t, "keep", nil)
	m := newTestModel(t)
	m = press(m, runes("abc"), alt('c'))

	assert.Equal(t, "keep", *clip)
	assert.Equal(t, "Nothing selected.", m.flash)
}

func TestClipboardUnavailable(t *testing.T) {
	fakeClipboard(t, "", errors.New("no clipboard utility"))
	m := newTestModel(t)
	m = press(m, runes("abc"), keyOf(tea.KeyCtrlA), alt('x'))
	assert.Equal(t, "abc", m.ctrl.Snapshot().Document.Text())
	assert.Equal(t, "Clipboard unavailable.", m.flash)

	m = press(m, keyOf(tea.KeyCtrlV))
	assert.Equal(t, "abc", m.ctrl.Snapshot().Document.Text())
}
