//go:build !unix && !windows && !wasip1
// +build !unix,!windows,!wasip1

package pio

import (
	"errors"
	"io"
	"os"
	"sync"
)

// Positional reports whether transfers use a native positional primitive.
//
// This build has none: every transfer seeks the shared cursor and then reads
// or writes while holding a per-file lock, so concurrent callers serialize.
const Positional = false

// Backend names the primitive used by this build.
const Backend = "seek"

type sysFile struct {
	mu sync.Mutex
}

func (s *sysFile) init(*os.File) error {
	return nil
}

func (s *sysFile) pread(f *os.File, p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := f.Read(p)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return n, err
}

func (s *sysFile) pwrite(f *os.File, p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	return f.Write(p)
}

// IsInterrupted always reports false; the runtime already retries
// interrupted calls made through os.File on this platform.
func IsInterrupted(error) bool {
	return false
}
