//go:build unix || windows
// +build unix windows

package pio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// holdLock parks a raw read (or write) on f's descriptor until the test ends,
// keeping the descriptor's read (or write) lock taken.
func holdLock(t *testing.T, f *File, write bool) {
	t.Helper()

	entered := make(chan struct{})
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	park := func(uintptr) bool {
		close(entered)
		<-release
		return true
	}

	go func() {
		if write {
			_ = f.sys.rc.Write(park)
		} else {
			_ = f.sys.rc.Read(park)
		}
	}()

	<-entered
}

func waitDone(t *testing.T, done <-chan error, what string) {
	t.Helper()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("%s waited for another in-flight transfer", what)
	}
}

func TestReadAtRunsBesidePendingRead(t *testing.T) {
	f := newTestFile(t, "Hello World!\n")
	holdLock(t, f, false)

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 5)
		_, err := f.ReadAt(buf, 6)
		done <- err
	}()

	waitDone(t, done, "ReadAt")
}

func TestWriteAtRunsBesidePendingWrite(t *testing.T) {
	f := newTestFile(t, "Hello World!\n")
	holdLock(t, f, true)

	done := make(chan error, 1)
	go func() {
		_, err := f.WriteAt([]byte("J"), 0)
		done <- err
	}()

	waitDone(t, done, "WriteAt")
}

func TestVectoredRunsBesidePendingTransfers(t *testing.T) {
	f := newTestFile(t, "Hello World!\n")
	holdLock(t, f, false)
	holdLock(t, f, true)

	done := make(chan error, 2)
	go func() {
		_, err := f.ReadvAt([][]byte{make([]byte, 2), make([]byte, 3)}, 0)
		done <- err
	}()
	go func() {
		_, err := f.WritevAt([][]byte{[]byte("ab"), []byte("cd")}, 0)
		done <- err
	}()

	waitDone(t, done, "ReadvAt/WritevAt")
	waitDone(t, done, "ReadvAt/WritevAt")
}
