package main

import (
	"fmt"
	"strconv"

	"github.com/docker/go-units"
	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

const (
	envVerbose   = "SYNCFILE_VERBOSE"
	envWorkers   = "SYNCFILE_WORKERS"
	envChunkSize = "SYNCFILE_CHUNK_SIZE"
)

// LookupFunc looks up an environment variable, as [os.LookupEnv] does.
type LookupFunc func(key string) (string, bool)

// envConfig holds the defaults taken from the environment. Flags override
// them.
type envConfig struct {
	verbose   bool
	workers   int
	chunkSize int
}

func loadEnv(lookup LookupFunc) (envConfig, error) {
	var cfg envConfig
	var err error

	if cfg.verbose, err = envValue(lookup, envVerbose, false); err != nil {
		return envConfig{}, err
	}

	if cfg.workers, err = envValue(lookup, envWorkers, 0); err != nil {
		return envConfig{}, err
	}

	if cfg.workers < 0 {
		return envConfig{}, fmt.Errorf("%s: must not be negative, got %d", envWorkers, cfg.workers)
	}

	if v, ok := lookup(envChunkSize); ok && v != "" {
		n, err := parseSize(v)
		if err != nil {
			return envConfig{}, fmt.Errorf("%s: %w", envChunkSize, err)
		}

		if cfg.chunkSize, err = safemath.ConvertAny[int](n); err != nil {
			return envConfig{}, fmt.Errorf("%s: %w", envChunkSize, err)
		}
	}

	return cfg, nil
}

// envValue converts the variable key to T, or returns def when it is unset or
// empty.
func envValue[T cast.Basic](lookup LookupFunc, key string, def T) (T, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}

	converted, err := cast.ToE[T](v)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", key, err)
	}

	return converted, nil
}

// parseSize parses a byte count such as "4096", "64k" or "4MiB". Unit
// suffixes are binary.
func parseSize(s string) (uint64, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}

	return safemath.ConvertAny[uint64](n)
}

// sizeValue is a [flag.Value] holding a byte count.
type sizeValue struct {
	n   uint64
	set bool
}

func (s *sizeValue) String() string {
	if s == nil || !s.set {
		return ""
	}

	return strconv.FormatUint(s.n, 10)
}

func (s *sizeValue) Set(v string) error {
	n, err := parseSize(v)
	if err != nil {
		return err
	}

	s.n, s.set = n, true

	return nil
}

func humanSize(n uint64) string {
	return units.BytesSize(float64(n))
}

func toInt(n uint64) (int, error) {
	return safemath.ConvertAny[int](n)
}
