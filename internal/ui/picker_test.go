package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xedit/internal/gateway"
)

func TestPickerDetached(t *testing.T) {
	_, err := NewPicker().PickOpenFile(context.Background())
	assert.ErrorIs(t, err, ErrPickerDetached)
}

func TestPickerRoundTrip(t *testing.T) {
	p := NewPicker()
	var kinds []pickKind
	p.Attach(func(msg tea.Msg) {
		req := msg.(pickRequestMsg)
		kinds = append(kinds, req.kind)
		req.reply <- pickResult{path: "/picked"}
	})

	path, err := p.PickOpenFile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/picked", path)

	_, err = p.PickOpenDirectory(context.Background())
	require.NoError(t, err)
	_, err = p.PickSavePath(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []pickKind{pickFile, pickDirectory, pickSave}, kinds)
}

func TestPickerGivesUpWhenContextEnds(t *testing.T) {
	p := NewPicker()
	p.Attach(func(tea.Msg) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.PickSavePath(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveDialog(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  string
		done  bool
	}{
		{"relative", "notes.txt", "/base/notes.txt", true},
		{"nested", "sub/../x.go", "/base/x.go", true},
		{"absolute", "/elsewhere/y.txt", "/elsewhere/y.txt", true},
		{"empty", "  ", "", false},
		{"folder only", "/base/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := make(chan pickResult, 1)
			d, _ := newDialog(pickRequestMsg{kind: pickSave, reply: reply}, "/base", true, 10)
			assert.Equal(t, "/base/", d.input.Value())

			d.input.SetValue(tt.typed)
			done, _ := d.update(keyOf(tea.KeyEnter))
			assert.Equal(t, tt.done, done)
			if !tt.done {
				assert.Empty(t, reply)
				return
			}
			r := <-reply
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, r.path)
		})
	}
}

func TestDialogEscCancels(t *testing.T) {
	for _, kind := range []pickKind{pickFile, pickDirectory, pickSave} {
		reply := make(chan pickResult, 1)
		d, _ := newDialog(pickRequestMsg{kind: kind, reply: reply}, t.TempDir(), true, 10)

		done, _ := d.update(keyOf(tea.KeyEsc))
		assert.True(t, done)
		assert.ErrorIs(t, (<-reply).err, gateway.ErrDialogClosed)
	}
}

func pickerDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	return dir
}

func TestFileDialogSelectsFile(t *testing.T) {
	dir := pickerDir(t)
	reply := make(chan pickResult, 1)
	d, cmd := newDialog(pickRequestMsg{kind: pickFile, reply: reply}, dir, true, 10)
	require.NotNil(t, cmd)
	d.update(cmd())

	// Entries are folders first: sub, a.txt, b.txt
	for _, k := range []tea.KeyMsg{runes("j"), runes("j")} {
		done, _ := d.update(k)
		require.False(t, done)
	}
	done, _ := d.update(keyOf(tea.KeyEnter))
	require.True(t, done)

	r := <-reply
	require.NoError(t, r.err)
	assert.Equal(t, filepath.Join(dir, "b.txt"), r.path)
}

func TestFileDialogEntersFolders(t *testing.T) {
	dir := pickerDir(t)
	reply := make(chan pickResult, 1)
	d, cmd := newDialog(pickRequestMsg{kind: pickFile, reply: reply}, dir, true, 10)
	d.update(cmd())

	done, _ := d.update(keyOf(tea.KeyEnter))
	assert.False(t, done)
	assert.Equal(t, filepath.Join(dir, "sub"), d.files.CurrentDirectory)
	assert.Empty(t, reply)
}

func TestDirectoryDialogSelectsFolder(t *testing.T) {
	dir := pickerDir(t)
	reply := make(chan pickResult, 1)
	d, cmd := newDialog(pickRequestMsg{kind: pickDirectory, reply: reply}, dir, true, 10)
	d.update(cmd())

	done, _ := d.update(keyOf(tea.KeyEnter))
	require.True(t, done)
	assert.Equal(t, filepath.Join(dir, "sub"), (<-reply).path)
}
