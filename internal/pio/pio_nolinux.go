//go:build !linux
// +build !linux

package pio

import "os"

// No vectored primitive: behave like a plain positional transfer on the first
// buffer, which callers already treat as a possibly short transfer.

func (s *sysFile) preadv(f *os.File, bufs [][]byte, off int64) (int, error) {
	return s.pread(f, bufs[0], off)
}

func (s *sysFile) pwritev(f *os.File, bufs [][]byte, off int64) (int, error) {
	return s.pwrite(f, bufs[0], off)
}

func (s *sysFile) fdatasync(f *os.File) error {
	return f.Sync()
}
