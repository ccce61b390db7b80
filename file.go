package syncfile

import (
	"io"
	"io/fs"
	"os"
	"runtime"
	"sync/atomic"

	"go.dw1.io/syncfile/internal/pio"
)

var (
	_ io.Closer = (*File)(nil)
)

// Positional reports whether this build transfers data with a native
// positional primitive. When false, transfers on the same file serialize on a
// lock around seek and read/write.
const Positional = pio.Positional

// Backend names the primitive this build transfers data with: "pread",
// "overlapped", "wasi" or "seek".
const Backend = pio.Backend

// handle is the open file shared by every reference to it.
type handle struct {
	pf   *pio.File
	name string
	refs atomic.Int64
	cfg  config
}

// acquire adds a reference unless the handle has already been released.
func (h *handle) acquire() bool {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return false
		}

		if h.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops a reference and closes the file when it was the last one.
func (h *handle) release() (last bool, err error) {
	if h.refs.Add(-1) != 0 {
		return false, nil
	}

	return true, h.pf.Close()
}

// File is one reference to a shared open file. All methods are safe for
// concurrent use, and every reference may be used from any goroutine.
//
// The zero value is not usable; obtain a File from [Open], [Create],
// [OpenFile], [NewFile], [NewFileFromFd] or [File.Clone].
type File struct {
	h       *handle
	closed  atomic.Bool
	cleanup runtime.Cleanup
}

// Open opens the named file for reading.
func Open(name string, opts ...Option) (*File, error) {
	return OpenFile(name, os.O_RDONLY, 0, opts...)
}

// Create creates or truncates the named file and opens it for reading and
// writing. New files get mode 0o666 before umask.
func Create(name string, opts ...Option) (*File, error) {
	return OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666, opts...)
}

// OpenFile opens the named file with the given flags and permissions, as
// [os.OpenFile] does.
func OpenFile(name string, flag int, perm fs.FileMode, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	return newFile(f, cfg)
}

// NewFile takes ownership of an open file. f must not be used directly
// afterwards.
func NewFile(f *os.File, opts ...Option) (*File, error) {
	if f == nil {
		return nil, fs.ErrInvalid
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newFile(f, cfg)
}

// NewFileFromFd takes ownership of an open file descriptor (or handle on
// Windows) and names it name.
func NewFileFromFd(fd uintptr, name string, opts ...Option) (*File, error) {
	f := os.NewFile(fd, name)
	if f == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	return NewFile(f, opts...)
}

func newFile(f *os.File, cfg config) (*File, error) {
	pf, err := pio.New(f)
	if err != nil {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: f.Name(), Err: err}
	}

	h := &handle{pf: pf, name: f.Name(), cfg: cfg}
	h.refs.Store(1)

	cfg.debug("opened file", "name", h.name, "backend", pio.Backend)

	return newRef(h), nil
}

func newRef(h *handle) *File {
	f := &File{h: h}
	f.cleanup = runtime.AddCleanup(f, releaseLeaked, h)

	return f
}

// releaseLeaked releases the reference held by a File that became unreachable
// without being closed.
func releaseLeaked(h *handle) {
	last, err := h.release()
	h.cfg.debug("released unclosed reference", "name", h.name, "last", last, "error", err)
}

// Clone returns a new reference to the same open file. The clone and f are
// equal peers: either may be closed first, and the file stays open until
// every reference is closed.
func (f *File) Clone() (*File, error) {
	if err := f.check("clone"); err != nil {
		return nil, err
	}

	if !f.h.acquire() {
		return nil, f.pathErr("clone", fs.ErrClosed)
	}

	c := newRef(f.h)
	f.h.cfg.debug("cloned file", "name", f.h.name, "refs", f.h.refs.Load())

	return c, nil
}

// Close releases this reference. The underlying file is closed when the last
// reference is released, and only then can Close report an error from the
// operating system. Closing a reference twice returns [fs.ErrClosed].
func (f *File) Close() error {
	if f == nil || f.h == nil {
		return fs.ErrInvalid
	}

	if !f.closed.CompareAndSwap(false, true) {
		return f.pathErr("close", fs.ErrClosed)
	}

	f.cleanup.Stop()

	last, err := f.h.release()
	if last {
		f.h.cfg.debug("closed file", "name", f.h.name, "error", err)
	}

	if err != nil {
		return f.pathErr("close", err)
	}

	return nil
}

// IntoOSFile gives up this reference and returns the underlying [os.File],
// transferring its ownership to the caller. It fails with [ErrShared] while
// other references are open. f cannot be used afterwards.
func (f *File) IntoOSFile() (*os.File, error) {
	if err := f.check("into"); err != nil {
		return nil, err
	}

	if !f.h.refs.CompareAndSwap(1, 0) {
		return nil, f.pathErr("into", ErrShared)
	}

	f.closed.Store(true)
	f.cleanup.Stop()

	return f.h.pf.OS(), nil
}

// Fd returns the native file descriptor or handle. It remains owned by f and
// is valid until the last reference is closed. A nil or closed reference
// returns ^uintptr(0), the value [os.File.Fd] reports for a closed file.
func (f *File) Fd() uintptr {
	if f.check("fd") != nil {
		return ^uintptr(0)
	}

	fd := f.h.pf.OS().Fd()
	runtime.KeepAlive(f)

	return fd
}

// Name returns the name the file was opened with.
func (f *File) Name() string {
	if f == nil || f.h == nil {
		return ""
	}

	return f.h.name
}

// Refs returns the number of open references to the underlying file. It is
// zero for a nil File and once the file has been released.
func (f *File) Refs() int64 {
	if f == nil || f.h == nil {
		return 0
	}

	return max(f.h.refs.Load(), 0)
}

// Positional reports whether transfers on f run in parallel. It is
// equivalent to the package constant [Positional].
func (f *File) Positional() bool {
	return Positional
}

// check fails when f is not an open reference.
func (f *File) check(op string) error {
	if f == nil || f.h == nil {
		return fs.ErrInvalid
	}

	if f.closed.Load() {
		return f.pathErr(op, fs.ErrClosed)
	}

	return nil
}
