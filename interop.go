package syncfile

import (
	"io"
	"math"
)

var (
	_ io.ReaderAt = readerAt{}
	_ io.WriterAt = writerAt{}
)

// ReaderAt returns an [io.ReaderAt] backed by f that follows the io package
// contract: it fills p completely or returns an error, [io.EOF] at end of
// file. It lets f feed helpers such as [io.NewSectionReader]; any cursor those
// helpers keep is private to them.
func (f *File) ReaderAt() io.ReaderAt {
	return readerAt{f}
}

// WriterAt returns an [io.WriterAt] backed by f that writes all of p or
// returns an error.
func (f *File) WriterAt() io.WriterAt {
	return writerAt{f}
}

type readerAt struct{ f *File }

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, r.f.pathErr("readat", ErrOffsetOverflow)
	}

	var n int
	for n < len(p) {
		m, err := r.f.ReadAt(p[n:], uint64(off)+uint64(n))
		n += m
		if err != nil {
			return n, err
		}

		if m == 0 {
			return n, io.EOF
		}
	}

	return n, nil
}

type writerAt struct{ f *File }

func (w writerAt) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || uint64(len(p)) > math.MaxInt64-uint64(off) {
		return 0, w.f.pathErr("writeat", ErrOffsetOverflow)
	}

	var n int
	for n < len(p) {
		m, err := w.f.WriteAt(p[n:], uint64(off)+uint64(n))
		n += m
		if err != nil {
			return n, err
		}

		if m == 0 {
			return n, w.f.pathErr("writeat", ErrWriteZero)
		}
	}

	return n, nil
}
