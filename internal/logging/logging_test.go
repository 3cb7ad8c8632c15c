package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dewakost.log")

	logger, closeFn, err := New(Config{Level: "debug", Format: "json", Output: "file", Path: path})
	require.NoError(t, err)

	logger.Debug("kost created")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kost created"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dewakost.log")

	logger, closeFn, err := New(Config{Level: "warn", Output: "file", Path: path})
	require.NoError(t, err)

	logger.Info("ignored")
	logger.Warn("kept")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "ignored"))
	assert.Contains(t, string(data), "kept")
}

func TestNew_NoneIsNop(t *testing.T) {
	logger, closeFn, err := New(Config{Output: "none"})
	require.NoError(t, err)

	logger.Error("dropped")
	assert.NoError(t, closeFn())
}
