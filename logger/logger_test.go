package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/config"
)

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resto.log")
	log, err := New("resto-test", config.Logger{Level: "debug", Mode: "production", FileEnable: true, Filename: path})
	require.NoError(t, err)

	log.Info("Store hydrated")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"resto-test"`)
	assert.Contains(t, string(data), "Store hydrated")
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New("resto-test", config.Logger{Level: "loud"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(0))
}
