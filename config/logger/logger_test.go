package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesPerChannelFiles(t *testing.T) {
	dir := t.TempDir()
	log := NewLogger(dir, zerolog.InfoLevel)

	log.Http.Info.Info().Str("path", "/health").Msg("request")
	log.WS.Error.Error().Str("session", "abc").Msg("write failed")
	log.WS.Trace.Debug().Msg("below level")

	raw, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "request")
	assert.Contains(t, string(raw), "path=/health")

	raw, err = os.ReadFile(filepath.Join(dir, "ws.error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "write failed")

	_, err = os.Stat(filepath.Join(dir, "ws.trace.log"))
	assert.True(t, os.IsNotExist(err))
}
