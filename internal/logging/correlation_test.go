package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrelationID(t *testing.T) {
	id := NewCorrelationID()
	assert.Len(t, id, 8)

	other := NewCorrelationID()
	assert.NotEqual(t, id, other)
}

func TestCorrelationID_Roundtrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abcd1234")

	id, ok := CorrelationID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abcd1234", id)
}

func TestCorrelationID_Missing(t *testing.T) {
	_, ok := CorrelationID(context.Background())
	assert.False(t, ok)
}

func TestCorrelationID_Empty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	_, ok := CorrelationID(ctx)
	assert.False(t, ok)
}

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(&correlationHandler{inner: slog.NewJSONHandler(&buf, nil)})
	logger.InfoContext(ctx, "test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestCorrelationHandler_AddsID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "deadbeef")
	entry := logLine(t, ctx)
	assert.Equal(t, "deadbeef", entry["correlation_id"])
}

func TestCorrelationHandler_OmitsMissingID(t *testing.T) {
	entry := logLine(t, context.Background())
	_, present := entry["correlation_id"]
	assert.False(t, present)
}

func TestCorrelationHandler_PreservesWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := &correlationHandler{inner: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("component", "sweep")}))

	ctx := WithCorrelationID(context.Background(), "cafe0123")
	logger.InfoContext(ctx, "test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sweep", entry["component"])
	assert.Equal(t, "cafe0123", entry["correlation_id"])
}
