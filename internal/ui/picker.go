package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"xedit/internal/gateway"
)

// ErrPickerDetached is returned when a pick is requested before Attach.
var ErrPickerDetached = errors.New("picker is not attached to a program")

type pickKind int

const (
	pickFile pickKind = iota
	pickDirectory
	pickSave
)

func (k pickKind) title() string {
	switch k {
	case pickDirectory:
		return "Open Folder"
	case pickSave:
		return "Save As"
	default:
		return "Open File"
	}
}

type pickResult struct {
	path string
	err  error
}

// pickRequestMsg asks the UI loop to show a dialog and answer on reply.
type pickRequestMsg struct {
	kind  pickKind
	reply chan<- pickResult
}

// Picker implements gateway.Picker for commands running off the UI loop. Each pick
// posts a request into the program and blocks until the dialog is answered.
type Picker struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

var _ gateway.Picker = (*Picker)(nil)

// NewPicker returns a detached picker.
func NewPicker() *Picker {
	return &Picker{}
}

// Attach routes requests into a running program, normally (*tea.Program).Send.
func (p *Picker) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

func (p *Picker) PickOpenFile(ctx context.Context) (string, error) {
	return p.request(ctx, pickFile)
}

func (p *Picker) PickOpenDirectory(ctx context.Context) (string, error) {
	return p.request(ctx, pickDirectory)
}

func (p *Picker) PickSavePath(ctx context.Context) (string, error) {
	return p.request(ctx, pickSave)
}

func (p *Picker) request(ctx context.Context, kind pickKind) (string, error) {
	p.mu.RLock()
	send := p.send
	p.mu.RUnlock()
	if send == nil {
		return "", ErrPickerDetached
	}

	reply := make(chan pickResult, 1)
	send(pickRequestMsg{kind: kind, reply: reply})
	select {
	case r := <-reply:
		return r.path, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// dialog is the modal shown while a pick request is open.
type dialog struct {
	kind  pickKind
	reply chan<- pickResult
	base  string

	files filepicker.Model
	input textinput.Model
}

func newDialog(req pickRequestMsg, base string, showHidden bool, height int) (*dialog, tea.Cmd) {
	d := &dialog{kind: req.kind, reply: req.reply, base: base}

	if req.kind == pickSave {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = "file name"
		ti.Width = 48
		ti.SetValue(base + string(filepath.Separator))
		ti.CursorEnd()
		d.input = ti
		return d, d.input.Focus()
	}

	fp := filepicker.New()
	fp.CurrentDirectory = base
	fp.ShowHidden = showHidden
	fp.FileAllowed = req.kind == pickFile
	fp.DirAllowed = req.kind == pickDirectory
	fp.AutoHeight = false
	fp.SetHeight(max(height, 5))
	// esc cancels the dialog instead of going up a directory
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))
	d.files = fp
	return d, d.files.Init()
}

// answer delivers the result. The reply channel is buffered, so this never blocks.
func (d *dialog) answer(path string, err error) {
	d.reply <- pickResult{path: path, err: err}
}

func (d *dialog) cancel() {
	d.answer("", gateway.ErrDialogClosed)
}

// update feeds msg to the dialog and reports whether it has been answered.
func (d *dialog) update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		d.cancel()
		return true, nil
	}

	if d.kind == pickSave {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
			path := d.savePath()
			if path == "" {
				return false, nil
			}
			d.answer(path, nil)
			return true, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return false, cmd
	}

	// Selecting sets Path; choosing a folder also navigates into it, so the entry
	// list DidSelectFile inspects is already stale by then.
	prev := d.files.Path
	var cmd tea.Cmd
	d.files, cmd = d.files.Update(msg)
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, d.files.KeyMap.Select) {
		if d.files.Path != "" && d.files.Path != prev {
			d.answer(d.files.Path, nil)
			return true, nil
		}
	}
	return false, cmd
}

// savePath resolves the typed path against the directory the dialog opened in.
func (d *dialog) savePath() string {
	v := strings.TrimSpace(d.input.Value())
	if v == "" || strings.HasSuffix(v, string(filepath.Separator)) {
		return ""
	}
	if !filepath.IsAbs(v) {
		v = filepath.Join(d.base, v)
	}
	return filepath.Clean(v)
}

func (d *dialog) view() string {
	var b strings.Builder
	b.WriteString(dialogTitleStyle.Render(d.kind.title()))
	b.WriteString("\n\n")

	switch d.kind {
	case pickSave:
		b.WriteString(d.input.View())
		b.WriteString("\n\n")
		b.WriteString(dialogHintStyle.Render("enter: save • esc: cancel"))
	case pickDirectory:
		b.WriteString(dialogHintStyle.Render(d.files.CurrentDirectory))
		b.WriteString("\n")
		b.WriteString(d.files.View())
		b.WriteString("\n")
		b.WriteString(dialogHintStyle.Render("→: enter folder • enter: choose • ←: up • esc: cancel"))
	default:
		b.WriteString(dialogHintStyle.Render(d.files.CurrentDirectory))
		b.WriteString("\n")
		b.WriteString(d.files.View())
		b.WriteString("\n")
		b.WriteString(dialogHintStyle.Render("enter: open • ←: up • esc: cancel"))
	}
	return dialogStyle.Render(b.String())
}
