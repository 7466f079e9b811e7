package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Info("saved", "key", "tasks")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "saved", rec["msg"])
	assert.Equal(t, "tasks", rec["key"])
}

func TestColorHandler(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.With("key", "notes").WithGroup("store").Error("save failed", "error", "disk full")
	out := buf.String()
	assert.Contains(t, out, "ERR save failed")
	assert.Contains(t, out, " key=notes")
	assert.Contains(t, out, " store.error=disk full")
}
