package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerDiscards(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, zerolog.Nop().GetLevel())
	assert.NotNil(t, L())
}

func TestInitRejectsBadLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud", Output: "none"})
	require.Error(t, err)
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.log")
	c, err := Init(Config{Level: "info", Format: "json", Output: "file", File: path})
	require.NoError(t, err)
	L().Info().Str("k", "v").Msg("hello")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
	Set(zerolog.Nop())
}

func TestSet(t *testing.T) {
	var buf bytes.Buffer
	Set(zerolog.New(&buf))
	L().Warn().Msg("captured")
	assert.Contains(t, buf.String(), "captured")
	Set(zerolog.Nop())
}
