package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWriter(&buf, "warn")

	lg.Info("hidden")
	lg.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len())

	lg.Warnf("shown %d", 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown 2", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])

	stack, ok := rec["callstack"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, stack)
	top := stack[0].(map[string]any)
	assert.Equal(t, "log_test.go", top["file"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNilLogger(t *testing.T) {
	var lg *Logger
	assert.NotPanics(t, func() {
		lg.Debug("x")
		lg.Infof("x %d", 1)
		assert.Nil(t, lg.With("k", "v"))
	})
}

func TestCallstackReusesStorage(t *testing.T) {
	buf := make([]StackFrame, 0, 32)
	fr := Callstack(buf)
	require.NotEmpty(t, fr)
	assert.Equal(t, &buf[:1][0], &fr[0])
	assert.NotEmpty(t, fr[0].String())
}
