//go:build linux
// +build linux

package pio

import (
	"os"

	"golang.org/x/sys/unix"
)

func (s *sysFile) preadv(_ *os.File, bufs [][]byte, off int64) (n int, err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		for {
			n, err = unix.Preadv(int(fd), bufs, off)
			if err != unix.EINTR {
				return
			}
		}
	})
	if cerr != nil {
		return 0, cerr
	}

	return clampN(n), err
}

func (s *sysFile) pwritev(_ *os.File, bufs [][]byte, off int64) (n int, err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		for {
			n, err = unix.Pwritev(int(fd), bufs, off)
			if err != unix.EINTR {
				return
			}
		}
	})
	if cerr != nil {
		return 0, cerr
	}

	return clampN(n), err
}

func (s *sysFile) fdatasync(_ *os.File) (err error) {
	cerr := s.rc.Control(func(fd uintptr) {
		for {
			err = unix.Fdatasync(int(fd))
			if err != unix.EINTR {
				return
			}
		}
	})
	if cerr != nil {
		return cerr
	}

	return err
}
