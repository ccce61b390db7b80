package chunk

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// DefaultChunkSize is the range size used when [WithChunkSize] is not given.
const DefaultChunkSize = 4 << 20

// ErrInvalidOption indicates that an option was malformed.
var ErrInvalidOption = errors.New("invalid chunk option")

// Option configures a chunked operation.
type Option func(*options) error

type options struct {
	chunkSize int
	workers   int
	logger    *slog.Logger
}

func newOptions(opts []Option) (options, error) {
	o := options{
		chunkSize: DefaultChunkSize,
		workers:   runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&o); err != nil {
			return options{}, err
		}
	}

	return o, nil
}

// WithChunkSize sets the size of each range in bytes. The last range of a
// file may be shorter.
func WithChunkSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidOption, size)
		}

		o.chunkSize = size

		return nil
	}
}

// WithWorkers bounds the number of ranges processed at once.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOption, n)
		}

		o.workers = n

		return nil
	}
}

// WithLogger sets the logger for per-range debug events. If logger is nil,
// logging is disabled. That is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger

		return nil
	}
}

func (o *options) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}
