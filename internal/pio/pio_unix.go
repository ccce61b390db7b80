//go:build unix
// +build unix

package pio

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Positional reports whether transfers use a native positional primitive.
const Positional = true

// Backend names the primitive used by this build.
const Backend = "pread"

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

// Control holds a reference to the descriptor without taking its read or
// write lock, so positional transfers on one file run in parallel.

func (s *sysFile) pread(_ *os.File, p []byte, off int64) (n int, err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		n, err = ignoringEINTRIO(unix.Pread, int(fd), p, off)
	})
	if cerr != nil {
		return 0, cerr
	}

	return clampN(n), err
}

func (s *sysFile) pwrite(_ *os.File, p []byte, off int64) (n int, err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		n, err = ignoringEINTRIO(unix.Pwrite, int(fd), p, off)
	})
	if cerr != nil {
		return 0, cerr
	}

	return clampN(n), err
}

// IsInterrupted reports whether err is an interrupted system call.
func IsInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

func ignoringEINTRIO(fn func(fd int, p []byte, off int64) (int, error), fd int, p []byte, off int64) (int, error) {
	for {
		n, err := fn(fd, p, off)
		if err != unix.EINTR {
			return n, err
		}
	}
}

// clampN hides the -1 some raw syscalls report alongside an error.
func clampN(n int) int {
	if n < 0 {
		return 0
	}

	return n
}
