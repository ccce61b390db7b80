//go:build wasip1
// +build wasip1

package pio

import (
	"errors"
	"os"
	"syscall"
)

// Positional reports whether transfers use a native positional primitive.
const Positional = true

// Backend names the primitive used by this build.
const Backend = "wasi"

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
	cerr := s.rc.Control(func(fd uintptr) {
		for {
			n, err = syscall.Pread(int(fd), p, off)
			if err != syscall.EINTR {
				return
			}
		}
	})
	if cerr != nil {
		return 0, cerr
	}

	if n < 0 {
		n = 0
	}

	return n, err
}

func (s *sysFile) pwrite(_ *os.File, p []byte, off int64) (n int, err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		for {
			n, err = syscall.Pwrite(int(fd), p, off)
			if err != syscall.EINTR {
				return
			}
		}
	})
	if cerr != nil {
		return 0, cerr
	}

	if n < 0 {
		n = 0
	}

	return n, err
}

// IsInterrupted reports whether err is an interrupted system call.
func IsInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}
