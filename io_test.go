package syncfile

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAt(t *testing.T) {
	f := openTemp(t, hello)

	tests := []struct {
		name string
		size int
		off  uint64
		want string
	}{
		{name: "prefix", size: 5, off: 0, want: "Hello"},
		{name: "middle", size: 5, off: 6, want: "World"},
		{name: "short", size: 32, off: 6, want: "World!\n"},
		{name: "atEOF", size: 4, off: 13, want: ""},
		{name: "pastEOF", size: 4, off: 1 << 40, want: ""},
		{name: "empty", size: 0, off: 1 << 40, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			n, err := f.ReadAt(buf, tt.off)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(buf[:n]))
		})
	}
}

func TestReadExactAt(t *testing.T) {
	f := openTemp(t, hello)

	buf := make([]byte, 6)
	require.NoError(t, f.ReadExactAt(buf, 6))
	assert.Equal(t, "World!", string(buf))

	require.NoError(t, f.ReadExactAt(nil, 1<<40))

	t.Run("pastEOF", func(t *testing.T) {
		buf := make([]byte, 10)
		err := f.ReadExactAt(buf, 6)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, KindUnexpectedEOF, KindOf(err))
		assert.Equal(t, "World!\n", string(buf[:7]))
	})
}

func TestReadToEndAt(t *testing.T) {
	f := openTemp(t, hello)

	got, err := f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, hello, string(got))

	got, err = f.ReadToEndAt(6)
	require.NoError(t, err)
	assert.Equal(t, "World!\n", string(got))

	got, err = f.ReadToEndAt(100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadToEndAtSmallChunks(t *testing.T) {
	data := strings.Repeat("abcdefghij", 1000)
	f := openTemp(t, data, WithInitialChunk(3), WithMaxChunk(64))

	got, err := f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, data, string(got))

	got, err = f.ReadToEndAt(9995)
	require.NoError(t, err)
	assert.Equal(t, "fghij", string(got))
}

func TestWriteAt(t *testing.T) {
	f := openTemp(t, hello)

	n, err := f.WriteAt([]byte("Gophr"), 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.WriteAt(nil, 1<<40)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Hello Gophr!\n", string(got))
}

func TestWriteAllAtExtends(t *testing.T) {
	f := openTemp(t, "ab")

	require.NoError(t, f.WriteAllAt([]byte("xy"), 4))

	got, err := f.ReadToEndAt(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\x00\x00xy"), got)

	size, err := f.Len()
	require.NoError(t, err)
	assert.EqualValues(t, 6, size)
}

func TestWriteAllAtStalled(t *testing.T) {
	f := openTemp(t, "")

	var calls []uint64
	write := func(p []byte, off uint64) (int, error) {
		calls = append(calls, off)
		if len(calls) == 1 {
			return 2, nil
		}

		return 0, nil
	}

	err := f.writeAll([]byte("Hello"), 10, write)
	require.ErrorIs(t, err, ErrWriteZero)
	require.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, KindWriteZero, KindOf(err))
	assert.Equal(t, []uint64{10, 12}, calls)

	calls = nil
	require.NoError(t, f.writeAll(nil, 10, write))
	assert.Empty(t, calls)
}

func TestOffsetOverflow(t *testing.T) {
	f := openTemp(t, hello)
	off := uint64(math.MaxInt64) + 1

	_, err := f.ReadAt(make([]byte, 1), off)
	require.ErrorIs(t, err, ErrOffsetOverflow)

	_, err = f.WriteAt([]byte("x"), off)
	require.ErrorIs(t, err, ErrOffsetOverflow)

	err = f.ReadExactAt(make([]byte, 1), off)
	require.ErrorIs(t, err, ErrOffsetOverflow)

	err = f.WriteAllAt([]byte("x"), math.MaxUint64)
	require.ErrorIs(t, err, ErrOffsetOverflow)

	_, err = f.ReadToEndAt(off)
	require.ErrorIs(t, err, ErrOffsetOverflow)
}

func TestVectored(t *testing.T) {
	f := openTemp(t, "")

	n, err := f.WriteVectoredAt([][]byte{[]byte("Hello "), nil, []byte("World!\n")}, 0)
	require.NoError(t, err)
	require.Positive(t, n)

	// Platforms without a vectored call may stop after the first buffer.
	if n < len(hello) {
		require.NoError(t, f.WriteAllAt([]byte(hello)[n:], uint64(n)))
	}

	a, b := make([]byte, 5), make([]byte, 8)
	n, err = f.ReadVectoredAt([][]byte{a, b}, 0)
	require.NoError(t, err)
	require.Positive(t, n)
	assert.Equal(t, "Hello", string(a))

	if n == len(hello) {
		assert.Equal(t, " World!\n", string(b))
	}

	n, err = f.ReadVectoredAt([][]byte{a}, 100)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReaderAtAdapter(t *testing.T) {
	f := openTemp(t, hello)

	sr := io.NewSectionReader(f.ReaderAt(), 6, 100)
	got, err := io.ReadAll(sr)
	require.NoError(t, err)
	assert.Equal(t, "World!\n", string(got))

	buf := make([]byte, 10)
	n, err := f.ReaderAt().ReadAt(buf, 6)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 7, n)

	_, err = f.ReaderAt().ReadAt(buf, -1)
	require.ErrorIs(t, err, ErrOffsetOverflow)
}

func TestWriterAtAdapter(t *testing.T) {
	f := openTemp(t, "")

	w := f.WriterAt()
	n, err := w.WriteAt([]byte("World!\n"), 6)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = w.WriteAt([]byte("Hello "), 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = io.Copy(&buf, io.NewSectionReader(f.ReaderAt(), 0, 1<<20))
	require.NoError(t, err)
	assert.Equal(t, hello, buf.String())

	_, err = w.WriteAt([]byte("x"), -1)
	require.ErrorIs(t, err, ErrOffsetOverflow)
}

func TestFlush(t *testing.T) {
	f, err := Open(writeTemp(t, hello))
	require.NoError(t, err)

	require.NoError(t, f.Flush())
	require.NoError(t, f.Close())
	require.Error(t, f.Flush())
}
