package syncfile

import (
	"fmt"
	"io"
	"runtime"
	"slices"

	"go.dw1.io/safemath"
)

// toOffset converts an unsigned offset to the platform's signed file offset.
func toOffset(off uint64) (int64, error) {
	o, err := safemath.ConvertAny[int64](off)
	if err != nil {
		return 0, fmt.Errorf("%w: %d: %w", ErrOffsetOverflow, off, err)
	}

	return o, nil
}

// ReadAt reads up to len(p) bytes into p starting at byte offset off. It
// performs a single transfer, so n may be less than len(p) even when more
// data follows. At or past end of file it returns (0, nil).
func (f *File) ReadAt(p []byte, off uint64) (n int, err error) {
	if err := f.check("readat"); err != nil {
		return 0, err
	}

	if len(p) == 0 {
		return 0, nil
	}

	o, err := toOffset(off)
	if err != nil {
		return 0, f.pathErr("readat", err)
	}

	n, err = f.h.pf.ReadAt(p, o)
	runtime.KeepAlive(f)
	if err != nil {
		return n, f.pathErr("readat", err)
	}

	return n, nil
}

// ReadExactAt fills p with the bytes starting at off, issuing as many
// transfers as needed. If end of file is reached first it returns an error of
// kind [KindUnexpectedEOF] wrapping [io.ErrUnexpectedEOF]; the bytes that were
// available are left at the start of p. An empty p succeeds without I/O.
func (f *File) ReadExactAt(p []byte, off uint64) error {
	if err := f.check("readexactat"); err != nil {
		return err
	}

	want := len(p)
	for len(p) > 0 {
		n, err := f.ReadAt(p, off)
		if err != nil {
			return err
		}

		if n == 0 {
			f.h.cfg.debug("short exact read", "name", f.h.name, "offset", off, "missing", len(p), "want", want)
			return f.pathErr("readexactat", io.ErrUnexpectedEOF)
		}

		p = p[n:]
		off += uint64(n)
	}

	return nil
}

// ReadToEndAt reads from off until end of file and returns the bytes read.
//
// The file size is not consulted; the destination grows as data arrives,
// starting at the initial chunk and doubling up to the max chunk (see
// [WithInitialChunk] and [WithMaxChunk]). On error the bytes read so far are
// returned along with it.
func (f *File) ReadToEndAt(off uint64) ([]byte, error) {
	if err := f.check("readtoendat"); err != nil {
		return nil, err
	}

	cfg := f.h.cfg
	chunk := cfg.initialChunk
	buf := make([]byte, 0, chunk)

	for {
		if len(buf) == cap(buf) {
			buf = slices.Grow(buf, chunk)
			chunk = min(chunk*2, cfg.maxChunk)
		}

		window := buf[len(buf):cap(buf)]
		if len(window) > cfg.maxChunk {
			window = window[:cfg.maxChunk]
		}

		n, err := f.ReadAt(window, off)
		buf = buf[:len(buf)+n]
		if err != nil {
			return buf, err
		}

		if n == 0 {
			return buf, nil
		}

		off += uint64(n)
	}
}

// ReadVectoredAt reads into bufs in order starting at off with a single
// transfer where the platform supports it. Like [File.ReadAt] it may be
// short, and it returns (0, nil) at end of file.
func (f *File) ReadVectoredAt(bufs [][]byte, off uint64) (n int, err error) {
	if err := f.check("readvectoredat"); err != nil {
		return 0, err
	}

	o, err := toOffset(off)
	if err != nil {
		return 0, f.pathErr("readvectoredat", err)
	}

	n, err = f.h.pf.ReadvAt(bufs, o)
	runtime.KeepAlive(f)
	if err != nil {
		return n, f.pathErr("readvectoredat", err)
	}

	return n, nil
}

// WriteAt writes up to len(p) bytes from p starting at byte offset off. It
// performs a single transfer, so n may be less than len(p).
func (f *File) WriteAt(p []byte, off uint64) (n int, err error) {
	if err := f.check("writeat"); err != nil {
		return 0, err
	}

	if len(p) == 0 {
		return 0, nil
	}

	o, err := toOffset(off)
	if err != nil {
		return 0, f.pathErr("writeat", err)
	}

	n, err = f.h.pf.WriteAt(p, o)
	runtime.KeepAlive(f)
	if err != nil {
		return n, f.pathErr("writeat", err)
	}

	return n, nil
}

// WriteAllAt writes all of p starting at off, issuing as many transfers as
// needed. A transfer that writes nothing fails with an error of kind
// [KindWriteZero] wrapping [ErrWriteZero].
func (f *File) WriteAllAt(p []byte, off uint64) error {
	if err := f.check("writeallat"); err != nil {
		return err
	}

	return f.writeAll(p, off, f.WriteAt)
}

// writeAll loops write until p is exhausted.
func (f *File) writeAll(p []byte, off uint64, write func([]byte, uint64) (int, error)) error {
	for len(p) > 0 {
		n, err := write(p, off)
		if err != nil {
			return err
		}

		if n == 0 {
			f.h.cfg.debug("stalled write", "name", f.h.name, "offset", off, "remaining", len(p))
			return f.pathErr("writeallat", ErrWriteZero)
		}

		p = p[n:]
		off += uint64(n)
	}

	return nil
}

// WriteVectoredAt writes bufs in order starting at off with a single transfer
// where the platform supports it. It may be short.
func (f *File) WriteVectoredAt(bufs [][]byte, off uint64) (n int, err error) {
	if err := f.check("writevectoredat"); err != nil {
		return 0, err
	}

	o, err := toOffset(off)
	if err != nil {
		return 0, f.pathErr("writevectoredat", err)
	}

	n, err = f.h.pf.WritevAt(bufs, o)
	runtime.KeepAlive(f)
	if err != nil {
		return n, f.pathErr("writevectoredat", err)
	}

	return n, nil
}

// Flush exists for parity with buffered writers. File keeps no user-space
// buffer, so it only reports whether f is still open.
func (f *File) Flush() error {
	return f.check("flush")
}
