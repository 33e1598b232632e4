// Package gateway is the boundary between the editor core and the outside world:
// the filesystem and the open/save pickers. Every call may block, so callers run them
// off the update loop and feed the results back in as messages.
package gateway

import "context"

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// FileSystem reads, writes and lists plain-text files.
type FileSystem interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, text string) error
	// List returns the direct children of path in listing order.
	List(ctx context.Context, path string) ([]Entry, error)
}

// Picker asks the user for a location. A cancelled prompt returns ErrDialogClosed.
type Picker interface {
	PickOpenFile(ctx context.Context) (string, error)
	PickOpenDirectory(ctx context.Context) (string, error)
	PickSavePath(ctx context.Context) (string, error)
}
