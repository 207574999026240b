package log_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protosmith/protosmith/internal/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace": log.LevelTrace,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"":      slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, log.ParseLevel(in), in)
	}
}

func TestEffectiveLevel(t *testing.T) {
	assert.Equal(t, "warn", log.EffectiveLevel("warn", false, false))
	assert.Equal(t, "info", log.EffectiveLevel("warn", true, false))
	assert.Equal(t, "debug", log.EffectiveLevel("warn", true, true))
	assert.Equal(t, "trace", log.EffectiveLevel("trace", true, true))
	assert.Equal(t, "debug", log.EffectiveLevel("debug", true, false))
}

func TestConsoleHandlerSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(log.NewConsoleHandler(&stdout, &stderr, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("progress", "layer", "contract")
	logger.Error("failed", "error", "boom")

	assert.Contains(t, stdout.String(), "msg=progress layer=contract")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.NotContains(t, stdout.String(), "failed")
	assert.Contains(t, stderr.String(), "msg=failed error=boom")
	assert.NotContains(t, stderr.String(), "progress")
}

func TestConsoleHandlerTraceLabel(t *testing.T) {
	var stdout bytes.Buffer
	logger := slog.New(log.NewConsoleHandler(&stdout, &bytes.Buffer{}, log.LevelTrace))

	logger.Log(t.Context(), log.LevelTrace, "deep")
	assert.Contains(t, stdout.String(), "level=TRACE msg=deep")
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protosmith.log")
	logger, closers, err := log.SetupLogger("info", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.With("run", "r1").Info("hello")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello run=r1")
}

func TestSetupLoggerBadFile(t *testing.T) {
	_, _, err := log.SetupLogger("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	raw := log.NewRaw(&buf)

	raw.Log("stderr", []byte("line one\r\nline two\n"))
	raw.Log("stdout", nil)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " stderr: line one"))
	assert.True(t, strings.HasSuffix(lines[1], " stderr: line two"))

	log.NewRaw(nil).Log("stdout", []byte("dropped"))
}
