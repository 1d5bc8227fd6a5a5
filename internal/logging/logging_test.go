package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pagedtable.log")

	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())

	result.Logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close(), "close is idempotent")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	result := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "x.log")})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "loud"})
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestFromContext_TraceID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := base.WithContext(context.Background())
	ctx = ContextWithTraceID(ctx, "trace-123")

	FromContext(ctx).Info().Msg("x")
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
	assert.Equal(t, "trace-123", GetOrGenerateTraceID(ctx))
}

func TestFromContext_Empty(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())

	id := GetOrGenerateTraceID(context.Background())
	assert.Len(t, id, 26)
	assert.NotEqual(t, id, NewID())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "source")
	l.Info().Msg("m")
	assert.Contains(t, buf.String(), `"component":"source"`)
}
