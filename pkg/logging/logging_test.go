package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, false))
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(true, true), "quiet wins")
}

func TestNew(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("rendering", "width", 8)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=rendering")
	assert.Contains(t, out.String(), "width=8")
}
