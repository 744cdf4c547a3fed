package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTo_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeTo(config.LoggerConfig{Level: "debug", Env: "production"}, &buf))

	Get().Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
}

func TestInitializeTo_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeTo(config.LoggerConfig{Level: "warn"}, &buf))

	Get().Info("dropped")
	assert.Zero(t, buf.Len())

	Get().Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInitializeTo_BadLevel(t *testing.T) {
	assert.Error(t, InitializeTo(config.LoggerConfig{Level: "loud"}, &bytes.Buffer{}))
}
