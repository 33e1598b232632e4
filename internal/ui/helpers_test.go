package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"xedit/internal/editor"
	"xedit/internal/gateway"
)

// project creates dir/a.txt, dir/notes.md and dir/sub/b.txt.
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	files := map[string]string{
		"a.txt":     "alpha\n",
		"notes.md":  "# Notes\n",
		"sub/b.txt": "bravo\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// newTestModel returns a sized model over the real file system with startup applied.
func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	env := editor.Env{FS: gateway.NewOS(), Picker: NewPicker()}
	m := New(editor.New(nil), env, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	return drain(m, m.Init())
}

// drain runs cmd and everything it produces, feeding controller results back
// into the model. Spinner ticks are dropped.
func drain(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		case editor.Msg, clipboardMsg:
			next, cmd := m.Update(msg)
			m = next.(Model)
			queue = append(queue, cmd)
		}
	}
	return m
}

// press sends keys one at a time, draining the work each one starts.
func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(next.(Model), cmd)
	}
	return m
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
