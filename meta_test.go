package syncfile

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenAndSetLen(t *testing.T) {
	f := openTemp(t, hello)

	size, err := f.Len()
	require.NoError(t, err)
	assert.EqualValues(t, len(hello), size)

	require.NoError(t, f.SetLen(5))

	got, err := f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(got))

	require.NoError(t, f.SetLen(0))

	empty, err := f.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, f.SetLen(3))
	got, err = f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, got)

	require.ErrorIs(t, f.SetLen(1<<63), ErrOffsetOverflow)
}

func TestStatAndMode(t *testing.T) {
	f := openTemp(t, hello)

	fi, err := f.Stat()
	require.NoError(t, err)
	assert.EqualValues(t, len(hello), fi.Size())
	assert.False(t, fi.IsDir())

	mode, err := f.Mode()
	require.NoError(t, err)
	assert.True(t, mode.IsRegular())
}

func TestSync(t *testing.T) {
	f := openTemp(t, hello)

	require.NoError(t, f.WriteAllAt([]byte("J"), 0))
	require.NoError(t, f.Sync())
	require.NoError(t, f.SyncData())
}

func TestMetaAfterClose(t *testing.T) {
	f, err := Open(writeTemp(t, hello))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = f.Stat()
	require.ErrorIs(t, err, fs.ErrClosed)
	require.ErrorIs(t, f.SetLen(0), fs.ErrClosed)
	require.ErrorIs(t, f.Sync(), fs.ErrClosed)
	require.ErrorIs(t, f.SyncData(), fs.ErrClosed)
}
