package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.dw1.io/syncfile"
	"go.dw1.io/syncfile/chunk"
	"go.dw1.io/syncfile/internal/json"
)

func runCat(_ context.Context, e *env, args []string) error {
	var offset, length sizeValue

	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	fs.Var(&offset, "offset", "start reading at this byte offset")
	fs.Var(&length, "length", "read exactly this many bytes (default: to end of file)")

	args, err := parseArgs(fs, e, args, 1)
	if err != nil {
		return err
	}

	f, err := syncfile.Open(args[0], syncfile.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer f.Close()

	var data []byte
	if length.set {
		n, err := toInt(length.n)
		if err != nil {
			return fmt.Errorf("%w: length: %w", errUsage, err)
		}

		data = make([]byte, n)
		if err := f.ReadExactAt(data, offset.n); err != nil {
			return err
		}
	} else if data, err = f.ReadToEndAt(offset.n); err != nil {
		return err
	}

	_, err = e.stdout.Write(data)

	return err
}

type sumReport struct {
	Name      string        `json:"name"`
	Size      uint64        `json:"size"`
	ChunkSize int           `json:"chunk_size"`
	Backend   string        `json:"backend"`
	Chunks    []chunk.Chunk `json:"chunks"`
}

func runSum(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("sum", flag.ContinueOnError)
	opts, chunkSize := chunkFlags(fs, e)
	asJSON := fs.Bool("json", false, "print a JSON report")

	args, err := parseArgs(fs, e, args, 1)
	if err != nil {
		return err
	}

	chunkOpts, err := opts()
	if err != nil {
		return err
	}

	f, err := syncfile.Open(args[0], syncfile.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer f.Close()

	chunks, err := chunk.Sum(ctx, f, chunkOpts...)
	if err != nil {
		return err
	}

	var size uint64
	if n := len(chunks); n > 0 {
		size = chunks[n-1].Offset + uint64(chunks[n-1].Length)
	}

	e.logger.Debug("summed file", "name", f.Name(), "size", humanSize(size), "chunks", len(chunks))

	if *asJSON {
		if chunks == nil {
			chunks = []chunk.Chunk{}
		}

		return json.WriteReport(e.stdout, sumReport{
			Name:      f.Name(),
			Size:      size,
			ChunkSize: *chunkSize,
			Backend:   syncfile.Backend,
			Chunks:    chunks,
		})
	}

	for _, ch := range chunks {
		if _, err := fmt.Fprintf(e.stdout, "%016x\t%d\t%d\n", ch.Sum, ch.Offset, ch.Length); err != nil {
			return err
		}
	}

	return nil
}

func runCp(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("cp", flag.ContinueOnError)
	opts, _ := chunkFlags(fs, e)

	args, err := parseArgs(fs, e, args, 2)
	if err != nil {
		return err
	}

	chunkOpts, err := opts()
	if err != nil {
		return err
	}

	src, err := syncfile.Open(args[0], syncfile.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer src.Close()

	mode, err := src.Mode()
	if err != nil {
		return err
	}

	dst, err := syncfile.OpenFile(args[1], os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode.Perm(), syncfile.WithLogger(e.logger))
	if err != nil {
		return err
	}

	n, err := chunk.Copy(ctx, dst, src, chunkOpts...)
	if err == nil {
		err = dst.SyncData()
	}

	if cerr := dst.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	e.logger.Debug("copied file", "src", src.Name(), "dst", dst.Name(), "size", humanSize(n))

	return nil
}

// chunkFlags registers -chunk and -workers on fs. The returned function
// builds the chunk options once fs has been parsed.
func chunkFlags(fs *flag.FlagSet, e *env) (func() ([]chunk.Option, error), *int) {
	var size sizeValue
	fs.Var(&size, "chunk", "chunk size (default 4MiB, or "+envChunkSize+")")
	workers := fs.Int("workers", e.cfg.workers, "parallel chunks (default GOMAXPROCS, or "+envWorkers+")")

	chunkSize := new(int)
	*chunkSize = chunk.DefaultChunkSize
	if e.cfg.chunkSize > 0 {
		*chunkSize = e.cfg.chunkSize
	}

	return func() ([]chunk.Option, error) {
		opts := []chunk.Option{chunk.WithLogger(e.logger)}

		if size.set {
			n, err := toInt(size.n)
			if err != nil {
				return nil, fmt.Errorf("%w: chunk: %w", errUsage, err)
			}

			*chunkSize = n
		}

		if *chunkSize <= 0 {
			return nil, fmt.Errorf("%w: chunk size must be positive", errUsage)
		}

		opts = append(opts, chunk.WithChunkSize(*chunkSize))

		switch {
		case *workers < 0:
			return nil, fmt.Errorf("%w: workers must not be negative", errUsage)
		case *workers > 0:
			opts = append(opts, chunk.WithWorkers(*workers))
		}

		return opts, nil
	}, chunkSize
}
