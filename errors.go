package syncfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.dw1.io/syncfile/internal/pio"
)

// ErrWriteZero indicates that a write made no progress before all bytes were
// written.
//
// It wraps [io.ErrShortWrite].
var ErrWriteZero = fmt.Errorf("%w: write returned zero bytes", io.ErrShortWrite)

// ErrShared indicates that an operation requiring sole ownership of the file
// was attempted while other references were still open.
var ErrShared = errors.New("file has other open references")

// ErrOffsetOverflow indicates that an offset cannot be represented as a file
// offset on this platform.
var ErrOffsetOverflow = errors.New("offset overflows file offset")

// ErrInvalidOption indicates that an option was malformed.
//
// It can be wrapped by option validation failures.
var ErrInvalidOption = errors.New("invalid syncfile option")

// ErrorKind classifies errors returned by this package.
type ErrorKind uint8

const (
	// KindOther is any error not classified below, including raw errors
	// reported by the operating system.
	KindOther ErrorKind = iota
	// KindNotFound means the file does not exist.
	KindNotFound
	// KindPermissionDenied means the operation lacked permission.
	KindPermissionDenied
	// KindInterrupted means a system call was interrupted. Transfers retry
	// interrupted calls, so this kind is never returned by them.
	KindInterrupted
	// KindUnexpectedEOF means end of file was reached before a buffer was
	// filled by [File.ReadExactAt].
	KindUnexpectedEOF
	// KindWriteZero means a write stopped making progress in
	// [File.WriteAllAt].
	KindWriteZero
)

var kindNames = [...]string{
	KindOther:            "other",
	KindNotFound:         "not found",
	KindPermissionDenied: "permission denied",
	KindInterrupted:      "interrupted",
	KindUnexpectedEOF:    "unexpected end of file",
	KindWriteZero:        "write zero",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// KindOf returns the kind of err. A nil error is reported as [KindOther].
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, io.ErrUnexpectedEOF):
		return KindUnexpectedEOF
	case errors.Is(err, ErrWriteZero):
		return KindWriteZero
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case pio.IsInterrupted(err):
		return KindInterrupted
	default:
		return KindOther
	}
}

func (f *File) pathErr(op string, err error) error {
	return &fs.PathError{Op: op, Path: f.Name(), Err: err}
}
