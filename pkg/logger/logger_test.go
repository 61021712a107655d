package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Initialize(Config{Level: level, Format: "json", Output: &buf})
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInfo_WritesFieldsAndCaller(t *testing.T) {
	buf := captureJSON(t, "info")

	Info("Recipe created", map[string]interface{}{
		"recipe_id": 7,
	})

	entry := lastEntry(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Recipe created", entry["message"])
	assert.Equal(t, float64(7), entry["recipe_id"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestError_IncludesError(t *testing.T) {
	buf := captureJSON(t, "info")

	Error("Failed to delete recipe", errors.New("boom"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLevelFiltering(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithContext(t *testing.T) {
	buf := captureJSON(t, "debug")

	log := WithContext(map[string]interface{}{"request_id": "abc"})
	log.Debug("Handling request", map[string]interface{}{"path": "/api/v1/recipes"})

	entry := lastEntry(t, buf)
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "/api/v1/recipes", entry["path"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLogLevel("debug").String())
	assert.Equal(t, "info", parseLogLevel("unknown").String())
}
