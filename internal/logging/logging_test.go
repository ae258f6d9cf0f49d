package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTerminalHandlerLevels(t *testing.T) {
	quiet := NewTerminalHandler(new(bytes.Buffer), false)
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, quiet.Enabled(context.Background(), slog.LevelWarn))

	verbose := NewTerminalHandler(new(bytes.Buffer), true)
	assert.True(t, verbose.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewWritesPlainTextToBuffers(t *testing.T) {
	buf := new(bytes.Buffer)
	New(buf, true).Debug("sending request", "url", "https://dev.azure.com/acme")

	out := buf.String()
	assert.Contains(t, out, "sending request")
	assert.Contains(t, out, "url=https://dev.azure.com/acme")
	assert.NotContains(t, out, "\x1b[", "no ANSI colour outside a terminal")
}
