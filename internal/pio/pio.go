package pio

import (
	"errors"
	"os"
)

// ErrNegativeOffset is returned when a transfer is requested before the start
// of the file.
var ErrNegativeOffset = errors.New("negative offset")

// File is an open file that is only ever addressed by explicit offsets.
//
// A File is safe for concurrent use. It does not own any notion of sharing;
// callers decide when [File.Close] is called.
type File struct {
	f   *os.File
	sys sysFile
}

// New wraps f. Ownership of f moves to the returned File.
func New(f *os.File) (*File, error) {
	if f == nil {
		return nil, os.ErrInvalid
	}

	file := &File{f: f}
	if err := file.sys.init(f); err != nil {
		return nil, err
	}

	return file, nil
}

// ReadAt reads up to len(p) bytes starting at off. It returns (0, nil) at or
// past end of file.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if off < 0 {
		return 0, ErrNegativeOffset
	}

	return f.sys.pread(f.f, p, off)
}

// WriteAt writes up to len(p) bytes starting at off.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if off < 0 {
		return 0, ErrNegativeOffset
	}

	return f.sys.pwrite(f.f, p, off)
}

// ReadvAt reads into bufs in order starting at off. Platforms without a
// vectored primitive fill only the first non-empty buffer.
func (f *File) ReadvAt(bufs [][]byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	bufs = nonEmpty(bufs)
	switch len(bufs) {
	case 0:
		return 0, nil
	case 1:
		return f.sys.pread(f.f, bufs[0], off)
	}

	return f.sys.preadv(f.f, bufs, off)
}

// WritevAt writes bufs in order starting at off. Platforms without a
// vectored primitive write only the first non-empty buffer.
func (f *File) WritevAt(bufs [][]byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	bufs = nonEmpty(bufs)
	switch len(bufs) {
	case 0:
		return 0, nil
	case 1:
		return f.sys.pwrite(f.f, bufs[0], off)
	}

	return f.sys.pwritev(f.f, bufs, off)
}

// SyncData flushes file contents, and only the metadata needed to read them
// back, to stable storage.
func (f *File) SyncData() error {
	return f.sys.fdatasync(f.f)
}

// OS returns the underlying file. Reading or writing through it directly
// moves the OS cursor, which no method of File depends on.
func (f *File) OS() *os.File {
	return f.f
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// nonEmpty drops zero-length buffers without allocating when none are empty.
func nonEmpty(bufs [][]byte) [][]byte {
	for i, b := range bufs {
		if len(b) != 0 {
			continue
		}

		out := append([][]byte(nil), bufs[:i]...)
		for _, b := range bufs[i+1:] {
			if len(b) != 0 {
				out = append(out, b)
			}
		}

		return out
	}

	return bufs
}
