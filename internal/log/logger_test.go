package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestWithCorrelationID_UsesContextValue(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "req-123")
	logger.WithCorrelationID(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-123", line["correlation_id"])
	assert.Equal(t, "hello", line["msg"])
}

func TestGetOrGenerateCorrelationID_GeneratesWhenMissing(t *testing.T) {
	id := GetOrGenerateCorrelationID(context.Background())
	assert.Len(t, id, 36)
}

func TestGetLoggerInstanceFromContext(t *testing.T) {
	injected := NewNopLogger()
	ctx := ContextWithLogger(context.Background(), injected)
	assert.Same(t, injected, GetLoggerInstanceFromContext(ctx, nil))

	fallback := NewNopLogger()
	assert.Same(t, fallback, GetLoggerInstanceFromContext(nil, fallback)) //nolint:staticcheck
	assert.NotNil(t, GetLoggerInstanceFromContext(context.Background(), fallback))
}
