package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoggerConfig(t *testing.T) {
	cfg, err := ParseLoggerConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)

	cfg, err = ParseLoggerConfig("DEBUG", "json")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, FormatJSON, cfg.Format)

	_, err = ParseLoggerConfig("verbose", "")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)

	_, err = ParseLoggerConfig("info", "xml")
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.tsx")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"file":"a.tsx"`)
}

func TestPoolSize(t *testing.T) {
	assert.Equal(t, 3, PoolSize(3))

	size := PoolSize(0)
	assert.Equal(t, OptimalPoolSize(), size)
	assert.GreaterOrEqual(t, size, minPoolSize)
	assert.LessOrEqual(t, size, maxPoolSize)
}
