package gateway

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrDialogClosed is returned by a Picker when the user dismisses the prompt.
// It is not a fault: the pending operation is simply abandoned.
var ErrDialogClosed = errors.New("dialog closed")

// Kind classifies a failed filesystem operation.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermissionDenied
	KindAlreadyExists
	KindIsDirectory
	KindNotDirectory
	KindInvalidData
	KindTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindAlreadyExists:
		return "already exists"
	case KindIsDirectory:
		return "is a directory"
	case KindNotDirectory:
		return "not a directory"
	case KindInvalidData:
		return "not valid UTF-8 text"
	case KindTooLarge:
		return "file too large"
	default:
		return "i/o error"
	}
}

// IOError is a read, write or list failure.
type IOError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// newIOError wraps err, classifying it by the OS error it carries.
func newIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, syscall.EISDIR):
		return KindIsDirectory
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotDirectory
	default:
		return KindOther
	}
}

// KindOf reports the Kind of err, or KindOther when err is not an IOError.
func KindOf(err error) Kind {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Kind
	}
	return KindOther
}
