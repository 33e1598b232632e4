// Package document holds the state of the one open document: its text, where it
// lives on disk, whether it has unsaved edits, and the last error.
package document

import "path/filepath"

// Document is owned by the controller; everything else sees it through View.
type Document struct {
	buf      *Buffer
	path     string
	hasPath  bool
	dirty    bool
	err      error
	revision uint64
}

// View is the read-only side of a Document.
type View interface {
	Text() string
	Lines() []string
	LineCount() int
	Line(i int) string
	Cursor() Position
	Selection() (start, end Position, ok bool)
	SelectedText() string
	Path() (string, bool)
	Dirty() bool
	Err() error
	Revision() uint64
	Title() string
	Status() string
}

var _ View = (*Document)(nil)

// New returns an empty, untitled, clean document.
func New() *Document {
	return &Document{buf: NewBuffer()}
}

// ApplyEdit performs an in-editor action. Any action clears the last error; one that
// changes content marks the document dirty.
func (d *Document) ApplyEdit(a Action) bool {
	d.err = nil
	changed := d.buf.Apply(a)
	if changed {
		d.dirty = true
		d.revision++
	}
	return changed
}

// Load replaces the buffer with content read from path.
func (d *Document) Load(content, path string) {
	d.buf = NewBufferFromText(content)
	d.path = path
	d.hasPath = true
	d.dirty = false
	d.err = nil
	d.revision++
}

// ResetNew starts an empty untitled document.
//
// The new document is dirty even though it is empty: it has never been saved, so the
// user gets asked for a path before it can be considered clean.
func (d *Document) ResetNew() {
	d.buf = NewBuffer()
	d.path = ""
	d.hasPath = false
	d.dirty = true
	d.err = nil
	d.revision++
}

// MarkSaved records that the buffer was written to path.
func (d *Document) MarkSaved(path string) {
	d.path = path
	d.hasPath = true
	d.dirty = false
	d.err = nil
}

// SetPath points the document at path and leaves the dirty flag alone. Used when a
// save completes after further edits.
func (d *Document) SetPath(path string) {
	d.path = path
	d.hasPath = true
}

// RecordError replaces the last error. Buffer and dirty flag are left alone.
func (d *Document) RecordError(err error) {
	d.err = err
}

// ClearError drops the last error, e.g. when a new operation starts.
func (d *Document) ClearError() {
	d.err = nil
}

func (d *Document) Text() string      { return d.buf.Text() }
func (d *Document) Lines() []string   { return d.buf.Lines() }
func (d *Document) LineCount() int    { return d.buf.LineCount() }
func (d *Document) Line(i int) string { return d.buf.Line(i) }
func (d *Document) Cursor() Position  { return d.buf.Cursor() }
func (d *Document) Dirty() bool       { return d.dirty }
func (d *Document) Err() error        { return d.err }

// Revision changes whenever the content changes or is replaced.
func (d *Document) Revision() uint64 { return d.revision }

func (d *Document) Selection() (start, end Position, ok bool) {
	return d.buf.Selection()
}

// SelectedText returns the selected text, or "".
func (d *Document) SelectedText() string {
	return d.buf.SelectedText()
}

// Path returns the file the document belongs to; false means untitled.
func (d *Document) Path() (string, bool) {
	return d.path, d.hasPath
}

// Title is the file name, or "Untitled".
func (d *Document) Title() string {
	if !d.hasPath {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

// Status is what the status area shows: the last error if any, else the path.
func (d *Document) Status() string {
	if d.err != nil {
		return d.err.Error()
	}
	if !d.hasPath {
		return "New File"
	}
	return d.path
}
