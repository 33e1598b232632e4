// Package editor is the application controller: a message-driven state machine that
// owns the document and the file tree, dispatches blocking work as commands and
// applies their results when they come back.
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"xedit/internal/document"
	"xedit/internal/filetree"
	"xedit/internal/gateway"
)

// Controller is not safe for concurrent use. Update must only be called from the
// single loop that also reads Snapshot.
type Controller struct {
	doc  *document.Document
	tree *filetree.Tree
	log  *zap.Logger

	// Requests that replace the document or the tree take the next sequence number.
	// A result is applied only if it is newer than the last one applied, so a newer
	// request that fails or is cancelled does not discard an older success.
	seq     uint64
	docSeq  uint64
	treeSeq uint64

	listing map[string]struct{}
	pending int
	notice  string
}

// Snapshot is the read-only state handed to the presentation layer.
type Snapshot struct {
	Document document.View
	Tree     filetree.View
	Pending  int
	Notice   string
}

// New returns a controller holding an empty untitled document.
func New(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	tree := filetree.New()
	tree.ReplaceWithPlaceholder()
	return &Controller{
		doc:     document.New(),
		tree:    tree,
		log:     log,
		listing: make(map[string]struct{}),
	}
}

// Snapshot returns views over the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Document: c.doc,
		Tree:     c.tree,
		Pending:  c.pending,
		Notice:   c.notice,
	}
}

// Pending returns the number of dispatched commands whose results have not arrived.
func (c *Controller) Pending() int {
	return c.pending
}

// Notice returns the transient notice of the last operation, e.g. a cancelled picker.
func (c *Controller) Notice() string {
	return c.notice
}

// Update applies msg and returns the commands to run next.
//
// Results may arrive in any order relative to each other and to newer requests.
// They are applied under these rules:
//   - A directory listing installs into whatever node currently has its path, and is
//     dropped when no such directory exists any more.
//   - A file load or root listing is dropped when the document (open, tree click,
//     new file) or the tree (open, new file, reload) was already replaced by the
//     result of a newer request. Failed and cancelled results replace nothing.
//   - A save result is dropped when the document was replaced since; it marks the
//     document clean only if no edit happened while the write was in flight.
//   - A cancelled picker changes nothing and records no error.
func (c *Controller) Update(msg Msg) []Command {
	switch msg := msg.(type) {
	case OpenFile:
		c.startOperation()
		seq := c.next()
		if msg.Path == "" {
			return c.dispatch(PickFile{Seq: seq})
		}
		return c.dispatch(ReadFile{Path: msg.Path, Seq: seq})

	case OpenDirectory:
		c.startOperation()
		seq := c.next()
		if msg.Path == "" {
			return c.dispatch(PickDirectory{Seq: seq})
		}
		return c.dispatch(ListRoot{Path: msg.Path, Seq: seq})

	case NewFile:
		c.notice = ""
		c.docSeq = c.next()
		c.treeSeq = c.docSeq
		c.doc.ResetNew()
		c.tree.ReplaceWithPlaceholder()
		c.log.Debug("new document")
		return nil

	case Save:
		c.startOperation()
		path, ok := c.doc.Path()
		if !ok || msg.As {
			path = ""
		}
		return c.dispatch(WriteFile{
			Path:     path,
			Text:     c.doc.Text(),
			DocSeq:   c.docSeq,
			Revision: c.doc.Revision(),
		})

	case ToggleDirectory:
		c.notice = ""
		outcome := c.tree.Toggle(msg.Path)
		c.log.Debug("toggle directory", zap.String("path", msg.Path), zap.Stringer("outcome", outcome))
		if outcome != filetree.NeedsFetch {
			return nil
		}
		if _, inFlight := c.listing[msg.Path]; inFlight {
			return nil
		}
		c.doc.ClearError()
		c.listing[msg.Path] = struct{}{}
		return c.dispatch(ListDirectory{Path: msg.Path})

	case SelectFile:
		c.startOperation()
		return c.dispatch(ReadFile{Path: msg.Path, FromTree: true, Seq: c.next()})

	case Edit:
		c.notice = ""
		c.doc.ApplyEdit(msg.Action)
		return nil

	case Reload:
		root := c.tree.Root()
		if root == "" {
			c.notice = "Nothing to reload"
			return nil
		}
		c.startOperation()
		return c.dispatch(ListRoot{Path: root, Seq: c.next()})

	case FileOpened:
		c.complete()
		c.fileOpened(msg)
	case DirectoryOpened:
		c.complete()
		c.directoryOpened(msg)
	case DirectoryListed:
		c.complete()
		c.directoryListed(msg)
	case FileSaved:
		c.complete()
		c.fileSaved(msg)

	default:
		c.log.Warn("unhandled message", zap.String("type", fmt.Sprintf("%T", msg)))
	}
	return nil
}

func (c *Controller) fileOpened(msg FileOpened) {
	if msg.Seq <= c.docSeq {
		c.log.Debug("dropping superseded file load", zap.String("path", msg.Path))
		return
	}
	if c.failed("open", msg.Err) {
		return
	}

	c.docSeq = msg.Seq
	c.doc.Load(msg.Content, msg.Path)
	if !msg.FromTree && msg.Seq > c.treeSeq {
		c.treeSeq = msg.Seq
		c.tree.ReplaceWithFile(msg.Path)
	}
	c.log.Info("opened file", zap.String("path", msg.Path), zap.Int("bytes", len(msg.Content)))
}

func (c *Controller) directoryOpened(msg DirectoryOpened) {
	if msg.Seq <= c.treeSeq {
		c.log.Debug("dropping superseded directory listing", zap.String("path", msg.Path))
		return
	}
	if c.failed("open directory", msg.Err) {
		return
	}

	c.treeSeq = msg.Seq
	c.tree.ReplaceRoot(msg.Path, toTreeEntries(msg.Entries))
	c.log.Info("opened directory", zap.String("path", msg.Path), zap.Int("entries", len(msg.Entries)))
}

func (c *Controller) directoryListed(msg DirectoryListed) {
	delete(c.listing, msg.Path)
	// The directory stays expanded without children until the user retries
	if c.failed("list", msg.Err) {
		return
	}

	if !c.tree.InstallChildren(msg.Path, toTreeEntries(msg.Entries)) {
		c.log.Debug("dropping stale directory listing", zap.String("path", msg.Path))
	}
}

func (c *Controller) fileSaved(msg FileSaved) {
	if msg.DocSeq != c.docSeq {
		c.log.Debug("dropping save result for replaced document", zap.String("path", msg.Path))
		return
	}
	if c.failed("save", msg.Err) {
		return
	}

	if msg.Revision == c.doc.Revision() {
		c.doc.MarkSaved(msg.Path)
	} else {
		c.doc.SetPath(msg.Path)
	}

	if roots := c.tree.Roots(); len(roots) == 1 && roots[0].IsPlaceholder() {
		c.tree.ReplaceWithFile(msg.Path)
	}
	c.log.Info("saved file", zap.String("path", msg.Path))
}

// failed records err on the document. Cancelled pickers only leave a notice.
func (c *Controller) failed(op string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gateway.ErrDialogClosed) {
		c.notice = "Cancelled"
		c.log.Debug("picker cancelled", zap.String("op", op))
		return true
	}
	c.doc.RecordError(err)
	c.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	return true
}

func (c *Controller) next() uint64 {
	c.seq++
	return c.seq
}

func (c *Controller) startOperation() {
	c.notice = ""
	c.doc.ClearError()
}

func (c *Controller) dispatch(cmds ...Command) []Command {
	for _, cmd := range cmds {
		c.pending++
		c.log.Debug("dispatch", zap.String("command", fmt.Sprintf("%T", cmd)))
	}
	return cmds
}

func (c *Controller) complete() {
	if c.pending > 0 {
		c.pending--
	}
}

func toTreeEntries(entries []gateway.Entry) []filetree.Entry {
	out := make([]filetree.Entry, len(entries))
	for i, e := range entries {
		out[i] = filetree.Entry{Name: e.Name, Path: e.Path, IsDir: e.IsDir}
	}
	return out
}
