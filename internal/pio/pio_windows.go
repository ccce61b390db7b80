//go:build windows
// +build windows

package pio

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// Positional reports whether transfers use a native positional primitive.
const Positional = true

// Backend names the primitive used by this build.
const Backend = "overlapped"

// maxRW caps a single ReadFile/WriteFile request, whose length is a DWORD.
const maxRW = 1 << 30

type sysFile struct {
	rc syscall.RawConn
}

func (s *sysFile) init(f *os.File) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}

	s.rc = rc

	return nil
}

func (s *sysFile) pread(_ *os.File, p []byte, off int64) (n int, err error) {
	if len(p) > maxRW {
		p = p[:maxRW]
	}

	cerr := s.rc.Control(func(h uintptr) {
		n, err = overlappedIO(windows.Handle(h), p, off, windows.ReadFile)
	})
	if cerr != nil {
		return 0, cerr
	}

	return n, err
}

func (s *sysFile) pwrite(_ *os.File, p []byte, off int64) (n int, err error) {
	if len(p) > maxRW {
		p = p[:maxRW]
	}

	cerr := s.rc.Control(func(h uintptr) {
		n, err = overlappedIO(windows.Handle(h), p, off, windows.WriteFile)
	})
	if cerr != nil {
		return 0, cerr
	}

	return n, err
}

// overlappedIO performs one transfer at off and waits for it to complete, so
// handles opened for asynchronous I/O still behave synchronously here.
//
// Each call waits on its own event. The low bit of HEvent keeps the
// completion off any I/O completion port the handle is bound to.
func overlappedIO(h windows.Handle, p []byte, off int64, op func(windows.Handle, []byte, *uint32, *windows.Overlapped) error) (int, error) {
	ev, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return 0, err
	}
	defer windows.CloseHandle(ev)

	o := windows.Overlapped{
		Offset:     uint32(off),
		OffsetHigh: uint32(off >> 32),
		HEvent:     ev | 1,
	}

	var done uint32
	err = op(h, p, &done, &o)
	if errors.Is(err, windows.ERROR_IO_PENDING) {
		if _, werr := windows.WaitForSingleObject(ev, windows.INFINITE); werr != nil {
			return 0, werr
		}

		err = windows.GetOverlappedResult(h, &o, &done, false)
	}

	// Reading at or past end of file is not an error for positional reads.
	if errors.Is(err, windows.ERROR_HANDLE_EOF) {
		return int(done), nil
	}

	return int(done), err
}

// IsInterrupted reports whether err is an interrupted system call. Windows
// file I/O is never interrupted by signals.
func IsInterrupted(err error) bool {
	return false
}
