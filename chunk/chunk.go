package chunk

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.dw1.io/safemath"
	"golang.org/x/sync/errgroup"

	"go.dw1.io/syncfile"
)

// Chunk is one range of a file.
type Chunk struct {
	Index  int    `json:"index"`
	Offset uint64 `json:"offset"`
	Length int    `json:"length"`
	// Sum is the xxhash64 digest of the range. It is only set by [Sum].
	Sum uint64 `json:"sum,omitempty"`
}

// Split divides size bytes into consecutive ranges of chunkSize bytes. The
// last range holds the remainder. It returns nil when there is nothing to
// split.
func Split(size uint64, chunkSize int) []Chunk {
	if size == 0 || chunkSize <= 0 {
		return nil
	}

	cs := uint64(chunkSize)
	n := size / cs
	if size%cs != 0 {
		n++
	}

	chunks := make([]Chunk, 0, n)
	for off := uint64(0); ; off += cs {
		rest := size - off
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Offset: off,
			Length: int(min(rest, cs)),
		})

		if rest <= cs {
			return chunks
		}
	}
}

// ReadAll reads the whole file into memory, one range per task.
func ReadAll(ctx context.Context, f *syncfile.File, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	size, err := f.Len()
	if err != nil {
		return nil, err
	}

	n, err := safemath.ConvertAny[int](size)
	if err != nil {
		return nil, fmt.Errorf("file too large to hold in memory: %w", err)
	}

	buf := make([]byte, n)
	err = run(ctx, f, Split(size, o.chunkSize), &o, func(c *syncfile.File, ch *Chunk) error {
		start := int(ch.Offset)

		return c.ReadExactAt(buf[start:start+ch.Length], ch.Offset)
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Sum returns the ranges of f with their xxhash64 digests, in file order.
func Sum(ctx context.Context, f *syncfile.File, opts ...Option) ([]Chunk, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	size, err := f.Len()
	if err != nil {
		return nil, err
	}

	pool := newBufferPool(int(min(uint64(o.chunkSize), size)))
	chunks := Split(size, o.chunkSize)

	err = run(ctx, f, chunks, &o, func(c *syncfile.File, ch *Chunk) error {
		bp := pool.Get().(*[]byte)
		defer pool.Put(bp)

		buf := (*bp)[:ch.Length]
		if err := c.ReadExactAt(buf, ch.Offset); err != nil {
			return err
		}

		ch.Sum = xxhash.Sum64(buf)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return chunks, nil
}

// Copy copies the contents of src into dst at the same offsets and returns
// the number of bytes copied. dst is resized to the size of src first.
func Copy(ctx context.Context, dst, src *syncfile.File, opts ...Option) (uint64, error) {
	o, err := newOptions(opts)
	if err != nil {
		return 0, err
	}

	size, err := src.Len()
	if err != nil {
		return 0, err
	}

	if err := dst.SetLen(size); err != nil {
		return 0, err
	}

	pool := newBufferPool(int(min(uint64(o.chunkSize), size)))

	err = run(ctx, src, Split(size, o.chunkSize), &o, func(c *syncfile.File, ch *Chunk) error {
		w, err := dst.Clone()
		if err != nil {
			return err
		}
		defer w.Close()

		bp := pool.Get().(*[]byte)
		defer pool.Put(bp)

		buf := (*bp)[:ch.Length]
		if err := c.ReadExactAt(buf, ch.Offset); err != nil {
			return err
		}

		return w.WriteAllAt(buf, ch.Offset)
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}

// run calls fn for every chunk with its own clone of f, at most o.workers at
// a time. It stops at the first error or when ctx is done.
func run(ctx context.Context, f *syncfile.File, chunks []Chunk, o *options, fn func(*syncfile.File, *Chunk) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i := range chunks {
		ch := &chunks[i]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			c, err := f.Clone()
			if err != nil {
				return err
			}
			defer c.Close()

			o.debug("processing chunk", "name", f.Name(), "index", ch.Index, "offset", ch.Offset, "length", ch.Length)

			if err := fn(c, ch); err != nil {
				return fmt.Errorf("chunk %d at offset %d: %w", ch.Index, ch.Offset, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		o.debug("chunked run failed", "name", f.Name(), "chunks", len(chunks), "error", err)
		return err
	}

	o.debug("chunked run finished", "name", f.Name(), "chunks", len(chunks), "workers", o.workers)

	return ctx.Err()
}

func newBufferPool(size int) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			b := make([]byte, size)
			return &b
		},
	}
}
