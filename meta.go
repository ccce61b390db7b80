package syncfile

import (
	"io/fs"
	"runtime"
)

// Stat returns the current [fs.FileInfo] of the file. Nothing is cached.
func (f *File) Stat() (fs.FileInfo, error) {
	if err := f.check("stat"); err != nil {
		return nil, err
	}

	fi, err := f.h.pf.OS().Stat()
	runtime.KeepAlive(f)

	return fi, err
}

// Len returns the current size of the file in bytes.
func (f *File) Len() (uint64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return uint64(max(fi.Size(), 0)), nil
}

// IsEmpty reports whether the file currently has a size of zero.
func (f *File) IsEmpty() (bool, error) {
	n, err := f.Len()

	return n == 0, err
}

// Mode returns the current permission and mode bits of the file.
func (f *File) Mode() (fs.FileMode, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return fi.Mode(), nil
}

// Chmod changes the mode of the file.
func (f *File) Chmod(mode fs.FileMode) error {
	if err := f.check("chmod"); err != nil {
		return err
	}

	err := f.h.pf.OS().Chmod(mode)
	runtime.KeepAlive(f)

	return err
}

// SetLen truncates or extends the file to size bytes. Extended regions read
// as zeros.
func (f *File) SetLen(size uint64) error {
	if err := f.check("truncate"); err != nil {
		return err
	}

	n, err := toOffset(size)
	if err != nil {
		return f.pathErr("truncate", err)
	}

	err = f.h.pf.OS().Truncate(n)
	runtime.KeepAlive(f)

	return err
}

// Sync commits the contents and metadata of the file to stable storage.
func (f *File) Sync() error {
	if err := f.check("sync"); err != nil {
		return err
	}

	err := f.h.pf.OS().Sync()
	runtime.KeepAlive(f)

	return err
}

// SyncData is like [File.Sync] but may skip metadata that is not needed to
// read the contents back.
func (f *File) SyncData() error {
	if err := f.check("syncdata"); err != nil {
		return err
	}

	err := f.h.pf.SyncData()
	runtime.KeepAlive(f)
	if err != nil {
		return f.pathErr("syncdata", err)
	}

	return nil
}
