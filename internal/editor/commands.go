package editor

import (
	"context"
	"errors"

	"xedit/internal/gateway"
)

// ErrNoPicker is returned by commands that need a picker when Env has none.
var ErrNoPicker = errors.New("no picker available")

// Env is what commands run against.
type Env struct {
	FS     gateway.FileSystem
	Picker gateway.Picker
}

// Command is a unit of blocking work dispatched by the controller. Run is called off
// the update loop and always returns exactly one result message.
type Command interface {
	Run(ctx context.Context, env Env) Msg
}

// PickFile shows the open-file picker, then reads the chosen file.
type PickFile struct {
	Seq uint64
}

// ReadFile reads a known file.
type ReadFile struct {
	Path     string
	FromTree bool
	Seq      uint64
}

// PickDirectory shows the open-directory picker, then lists the chosen directory.
type PickDirectory struct {
	Seq uint64
}

// ListRoot lists a directory that becomes the new tree root.
type ListRoot struct {
	Path string
	Seq  uint64
}

// ListDirectory lists a directory inside the current tree.
type ListDirectory struct {
	Path string
}

// WriteFile writes a snapshot of the document. An empty Path shows the save picker.
type WriteFile struct {
	Path     string
	Text     string
	DocSeq   uint64
	Revision uint64
}

func (c PickFile) Run(ctx context.Context, env Env) Msg {
	msg := FileOpened{Seq: c.Seq}
	if env.Picker == nil {
		msg.Err = ErrNoPicker
		return msg
	}
	path, err := env.Picker.PickOpenFile(ctx)
	if err != nil {
		msg.Err = err
		return msg
	}
	return ReadFile{Path: path, Seq: c.Seq}.Run(ctx, env)
}

func (c ReadFile) Run(ctx context.Context, env Env) Msg {
	content, err := env.FS.Read(ctx, c.Path)
	return FileOpened{
		Path:     c.Path,
		Content:  content,
		Err:      err,
		FromTree: c.FromTree,
		Seq:      c.Seq,
	}
}

func (c PickDirectory) Run(ctx context.Context, env Env) Msg {
	if env.Picker == nil {
		return DirectoryOpened{Err: ErrNoPicker, Seq: c.Seq}
	}
	path, err := env.Picker.PickOpenDirectory(ctx)
	if err != nil {
		return DirectoryOpened{Err: err, Seq: c.Seq}
	}
	return ListRoot{Path: path, Seq: c.Seq}.Run(ctx, env)
}

func (c ListRoot) Run(ctx context.Context, env Env) Msg {
	entries, err := env.FS.List(ctx, c.Path)
	return DirectoryOpened{Path: c.Path, Entries: entries, Err: err, Seq: c.Seq}
}

func (c ListDirectory) Run(ctx context.Context, env Env) Msg {
	entries, err := env.FS.List(ctx, c.Path)
	return DirectoryListed{Path: c.Path, Entries: entries, Err: err}
}

func (c WriteFile) Run(ctx context.Context, env Env) Msg {
	msg := FileSaved{Path: c.Path, DocSeq: c.DocSeq, Revision: c.Revision}
	if msg.Path == "" {
		if env.Picker == nil {
			msg.Err = ErrNoPicker
			return msg
		}
		path, err := env.Picker.PickSavePath(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Path = path
	}
	msg.Err = env.FS.Write(ctx, msg.Path, c.Text)
	return msg
}
