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
	t.Cleanup(func() { globalLogger = nil })
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestInfo_WritesFieldsAndCaller(t *testing.T) {
	buf := captureJSON(t, "info")

	Info("Password reset link issued", Fields{"user_id": 7})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "Password reset link issued", lines[0]["message"])
	assert.EqualValues(t, 7, lines[0]["user_id"])
	assert.Contains(t, lines[0]["caller"], "logger_test.go")
}

func TestLevelFiltering(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden")
	Warn("shown", nil)
	Error("failed", errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestWithContext(t *testing.T) {
	buf := captureJSON(t, "debug")

	l := WithContext(Fields{"request_id": "abc"})
	l.Debug("scoped")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "abc", lines[0]["request_id"])
}

func TestParseLogLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, parseLogLevel("info"), parseLogLevel("verbose"))
	assert.Equal(t, parseLogLevel("debug"), parseLogLevel("DEBUG"))
}
