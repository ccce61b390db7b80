// Package pio issues single positional reads and writes against an open file
// using the best primitive the target platform offers.
//
// A transfer never consults or relies on the OS file cursor:
//
//	unix:     pread(2) / pwrite(2), preadv(2) / pwritev(2) on Linux
//	windows:  ReadFile / WriteFile with an OVERLAPPED offset
//	wasip1:   fd_pread / fd_pwrite
//	others:   seek + read/write serialized by a mutex
//
// The last variant is the only one that sacrifices concurrency; [Positional]
// reports whether the current build has a native primitive.
//
// Every call performs at most one successful primitive transfer. Short
// transfers are returned as-is, end of file is reported as (0, nil) rather
// than [io.EOF], and interrupted system calls are retried with the same
// offset and buffer.
package pio
