package gateway

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FilePermission is used when Write has to create a file.
const FilePermission = 0o644

// OS is the FileSystem backed by the local disk.
type OS struct {
	ignore     *Ignore
	showHidden bool
	maxSize    int64
}

// Option configures an OS filesystem.
type Option func(*OS)

// WithIgnore hides listing entries matching any of the patterns.
func WithIgnore(patterns []string) Option {
	return func(o *OS) {
		o.ignore = NewIgnore(patterns)
	}
}

// WithHidden controls whether dot-files appear in listings.
func WithHidden(show bool) Option {
	return func(o *OS) {
		o.showHidden = show
	}
}

// WithMaxFileSize rejects reads of files larger than n bytes. Zero disables the limit.
func WithMaxFileSize(n int64) Option {
	return func(o *OS) {
		o.maxSize = n
	}
}

// NewOS creates a filesystem gateway. Hidden files are listed unless WithHidden(false).
func NewOS(opts ...Option) *OS {
	o := &OS{showHidden: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Read returns the whole file as text. Files that are not valid UTF-8 are rejected
// rather than silently mangled.
func (o *OS) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", newIOError("read", path, err)
	}
	if info.IsDir() {
		return "", &IOError{Op: "read", Path: path, Kind: KindIsDirectory}
	}
	if o.maxSize > 0 && info.Size() > o.maxSize {
		return "", &IOError{
			Op:   "read",
			Path: path,
			Kind: KindTooLarge,
			Err:  fmt.Errorf("%d bytes exceeds limit of %d", info.Size(), o.maxSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", newIOError("read", path, err)
	}
	if !utf8.Valid(data) {
		return "", &IOError{Op: "read", Path: path, Kind: KindInvalidData}
	}
	return string(data), nil
}

// Write replaces the file at path with text, creating it if needed.
func (o *OS) Write(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(text), FilePermission); err != nil {
		return newIOError("write", path, err)
	}
	return nil
}

// List returns the children of a directory in the order the OS reports them,
// minus hidden and ignored entries.
func (o *OS) List(ctx context.Context, path string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, newIOError("list", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !o.showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(path, name)
		isDir := de.IsDir()
		// Follow symlinks so a linked directory can be expanded
		if de.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(fullPath); err == nil {
				isDir = info.IsDir()
			}
		}

		if o.ignore != nil && o.ignore.Match(fullPath, isDir) {
			continue
		}

		entries = append(entries, Entry{Name: name, Path: fullPath, IsDir: isDir})
	}
	return entries, nil
}

// ParentDirectory returns the directory a picker should start in for path.
// Empty paths resolve to the working directory.
func ParentDirectory(path string) string {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
