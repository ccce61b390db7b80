package syncfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg, err := newConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultInitialChunk, cfg.initialChunk)
	assert.Equal(t, defaultMaxChunk, cfg.maxChunk)
	assert.Nil(t, cfg.logger)

	cfg, err = newConfig([]Option{nil, WithInitialChunk(1 << 20), WithMaxChunk(4096)})
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.initialChunk)
	assert.Equal(t, 4096, cfg.maxChunk)
}

func TestInvalidOptions(t *testing.T) {
	for name, opt := range map[string]Option{
		"zeroInitial":     WithInitialChunk(0),
		"negativeInitial": WithInitialChunk(-1),
		"zeroMax":         WithMaxChunk(0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newConfig([]Option{opt})
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}

	_, err := Create(filepath.Join(t.TempDir(), "x"), WithMaxChunk(-5))
	require.ErrorIs(t, err, ErrInvalidOption)
}
