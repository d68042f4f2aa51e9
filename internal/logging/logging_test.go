package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesen/graphwalk/internal/config"
)

func TestNewWithoutFileIsNop(t *testing.T) {
	l, err := New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gw.log")
	l, err := New(config.LogConfig{Level: "debug", File: path})
	require.NoError(t, err)
	l.Debug("round started")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "round started")
	assert.Contains(t, string(data), `"app":"graphwalk"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}
