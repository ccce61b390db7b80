//go:build unix
// +build unix

package syncfile

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileFromFd(t *testing.T) {
	osf, err := os.Open(writeTemp(t, hello))
	require.NoError(t, err)
	defer osf.Close()

	fd, err := syscall.Dup(int(osf.Fd()))
	require.NoError(t, err)

	f, err := NewFileFromFd(uintptr(fd), "dup")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "dup", f.Name())

	buf := make([]byte, 5)
	require.NoError(t, f.ReadExactAt(buf, 0))
	assert.Equal(t, "Hello", string(buf))
}
