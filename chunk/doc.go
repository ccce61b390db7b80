// Package chunk splits a [syncfile.File] into fixed-size ranges and processes
// them in parallel, one clone of the file per range.
//
// Every function takes the size of the file once, when it is called. Data
// appended afterwards is not seen, and a file that shrinks underneath a call
// makes it fail with an unexpected end of file.
//
//	f, err := syncfile.Open("disk.img")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	sums, err := chunk.Sum(ctx, f, chunk.WithChunkSize(1<<20))
package chunk
