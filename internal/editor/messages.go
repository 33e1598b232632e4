package editor

import (
	"xedit/internal/document"
	"xedit/internal/gateway"
)

// Msg is anything the controller's Update accepts: user requests and the results of
// commands it dispatched earlier.
type Msg interface {
	editorMsg()
}

// OpenFile asks for a file to be loaded. An empty Path shows the open-file picker.
type OpenFile struct {
	Path string
}

// OpenDirectory asks for a directory to become the tree root. An empty Path shows
// the open-directory picker.
type OpenDirectory struct {
	Path string
}

// NewFile starts an untitled document.
type NewFile struct{}

// Save writes the document to its path. As, or a document without a path, shows the
// save picker first.
type Save struct {
	As bool
}

// ToggleDirectory expands or collapses a tree directory.
type ToggleDirectory struct {
	Path string
}

// SelectFile opens a file node clicked in the tree.
type SelectFile struct {
	Path string
}

// Edit performs an in-editor action.
type Edit struct {
	Action document.Action
}

// Reload lists the current root directory again, dropping every cached listing.
type Reload struct{}

// FileOpened carries the result of ReadFile or PickFile.
type FileOpened struct {
	Path     string
	Content  string
	Err      error
	FromTree bool
	Seq      uint64
}

// DirectoryOpened carries the result of PickDirectory or ListRoot.
type DirectoryOpened struct {
	Path    string
	Entries []gateway.Entry
	Err     error
	Seq     uint64
}

// DirectoryListed carries the result of ListDirectory.
type DirectoryListed struct {
	Path    string
	Entries []gateway.Entry
	Err     error
}

// FileSaved carries the result of WriteFile.
type FileSaved struct {
	Path     string
	Err      error
	DocSeq   uint64
	Revision uint64
}

func (OpenFile) editorMsg()        {}
func (OpenDirectory) editorMsg()   {}
func (NewFile) editorMsg()         {}
func (Save) editorMsg()            {}
func (ToggleDirectory) editorMsg() {}
func (SelectFile) editorMsg()      {}
func (Edit) editorMsg()            {}
func (Reload) editorMsg()          {}
func (FileOpened) editorMsg()      {}
func (DirectoryOpened) editorMsg() {}
func (DirectoryListed) editorMsg() {}
func (FileSaved) editorMsg()       {}
