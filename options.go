package syncfile

import (
	"fmt"
	"log/slog"
)

const (
	defaultInitialChunk = 512
	defaultMaxChunk     = 4 << 20
)

// Option configures a File at construction time.
//
// Returning an error aborts construction; the error wraps [ErrInvalidOption].
// Clones share the options of the File they were cloned from.
type Option func(*config) error

type config struct {
	logger       *slog.Logger
	initialChunk int
	maxChunk     int
}

func defaultConfig() config {
	return config{
		initialChunk: defaultInitialChunk,
		maxChunk:     defaultMaxChunk,
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	cfg.initialChunk = min(cfg.initialChunk, cfg.maxChunk)

	return cfg, nil
}

// WithLogger sets the logger used for lifecycle and failure events.
//
// If logger is nil, logging is disabled. That is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = logger

		return nil
	}
}

// WithInitialChunk sets the size of the first read issued by
// [File.ReadToEndAt]. Later reads double in size up to the max chunk.
func WithInitialChunk(size int) Option {
	return func(cfg *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: initial chunk must be positive, got %d", ErrInvalidOption, size)
		}

		cfg.initialChunk = size

		return nil
	}
}

// WithMaxChunk caps the size of a single read issued by [File.ReadToEndAt].
func WithMaxChunk(size int) Option {
	return func(cfg *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: max chunk must be positive, got %d", ErrInvalidOption, size)
		}

		cfg.maxChunk = size

		return nil
	}
}

func (c *config) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
