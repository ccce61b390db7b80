// Package syncfile provides a file handle that can be shared by many
// goroutines, each reading and writing at explicit offsets, without a shared
// cursor.
//
// An [os.File] is safe to use from several goroutines, but Read, Write and
// Seek all share one OS cursor, so independent readers race on its position.
// A [File] has no cursor at all: every operation takes the offset it works
// on, and no call depends on or changes state left by a previous one.
//
// [File.Clone] returns another reference to the same open file. Clones are
// equal peers; the OS handle is closed when the last reference is closed (or
// garbage collected). Cloning never duplicates the OS handle.
//
//	f, err := syncfile.Open("data.bin")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	g, _ := f.Clone()
//	go func() {
//		defer g.Close()
//		hdr := make([]byte, 16)
//		_ = g.ReadExactAt(hdr, 0)
//	}()
//
//	tail, err := f.ReadToEndAt(1 << 20)
//
// # Reading and writing
//
// [File.ReadAt] and [File.WriteAt] perform a single transfer and may be short.
// ReadAt reports end of file as (0, nil). [File.ReadExactAt],
// [File.WriteAllAt] and [File.ReadToEndAt] loop over them; short transfers
// that cannot make progress are reported with kinds [KindUnexpectedEOF] and
// [KindWriteZero]. Use [KindOf] to classify any error returned by this
// package.
//
// Offsets are unsigned. Offsets that do not fit the platform's file offset
// fail with [ErrOffsetOverflow].
//
// Files opened with [os.O_APPEND] are passed through unchanged. On Linux the
// kernel then appends every positional write regardless of its offset.
//
// # Platform support
//
// Unix, Windows and WASI (preview 1) provide positional I/O primitives, so
// concurrent calls proceed in parallel. Elsewhere each transfer seeks and then
// reads or writes under a per-file lock; calls stay correct but serialize.
// [Positional] reports which case applies to the current build.
//
// Concurrent writes to overlapping ranges still race on file content; only
// the position is protected.
package syncfile
