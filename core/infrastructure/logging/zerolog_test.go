package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetTagFilter("")
		SetLogLevel(LogLevelInfo)
	})
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"error", LogLevelError, false},
		{"WARN", LogLevelWarn, false},
		{"3", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{"debug", LogLevelDebug, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestShouldLogTag(t *testing.T) {
	t.Cleanup(func() { SetTagFilter("") })

	SetTagFilter("")
	assert.True(t, shouldLogTag("store:mongodb"))

	SetTagFilter("-store")
	assert.False(t, shouldLogTag("store"))
	assert.False(t, shouldLogTag("store:mongodb"))
	assert.True(t, shouldLogTag("seed:core"))

	SetTagFilter("seed, generator")
	assert.True(t, shouldLogTag("seed:dependents"))
	assert.True(t, shouldLogTag("generator"))
	assert.False(t, shouldLogTag("cli"))
}

func TestLogger_WritesTaggedJSON(t *testing.T) {
	buf := captureOutput(t)

	New("seed:core").Infof("inserted %d users", 30)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "seed:core", entry["tag"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "inserted 30 users", entry["message"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel(LogLevelWarn)

	log := New("generator")
	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")
	log.Success("always shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "always shown")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_FilteredTagIsSilent(t *testing.T) {
	buf := captureOutput(t)
	SetTagFilter("-store")

	New("store:memory").Error("should not appear")

	assert.Empty(t, buf.String())
}
