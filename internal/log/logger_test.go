package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, JSON: true, Output: &buf})

	logger.With("component", "session").WithError(errors.New("boom")).Error("login failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "login failed", entry["msg"])
	assert.Equal(t, "session", entry["component"])
	assert.Equal(t, "boom", entry["error"])
}

func TestWithErrorNil(t *testing.T) {
	logger := Default()
	assert.Same(t, logger, logger.WithError(nil))
}

func TestSetDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})
	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(Default()) })

	DefaultLogger().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
