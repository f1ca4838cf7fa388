package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := InitTo(&buf, "dashboard", slog.LevelInfo, "json")
	log.Debug("hidden")
	slog.Info("hello", "pair", "BTC-USD")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug is below the level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "dashboard", rec["service"])
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "BTC-USD", rec["pair"])
}

func TestInit_Text(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitTo(&buf, "dashboard", slog.LevelDebug, "text").Debug("shown")

	assert.Contains(t, buf.String(), "service=dashboard")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))

	ctx = WithRequestID(ctx, "abc-123")
	assert.Equal(t, "abc-123", RequestID(ctx))
}

func TestFromContext(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitTo(&buf, "dashboard", slog.LevelInfo, "json")

	FromContext(WithRequestID(context.Background(), "req-1")).Info("served")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}
