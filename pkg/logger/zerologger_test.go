package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("development", &buf)

	l.Info(context.Background(), "token exchanged", Field{Key: "provider", Value: "reddit"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "token exchanged", entry["message"])
	assert.Equal(t, "reddit", entry["provider"])
	assert.Contains(t, entry, "time")
}

func TestZeroLogger_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("production", &buf)

	l.Debug(context.Background(), "noisy")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestZeroLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("development", &buf).With(Field{Key: "request_id", Value: "abc"})

	l.Error(context.Background(), "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "error", entry["level"])
}
