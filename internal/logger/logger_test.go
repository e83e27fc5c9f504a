package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Debug Level Enables Debug", func(t *testing.T) {
		Initialize("debug", "json")
		assert.True(t, get().Enabled(ctx, slog.LevelDebug))
	})

	t.Run("Error Level Suppresses Info", func(t *testing.T) {
		Initialize("error", "text")
		assert.False(t, get().Enabled(ctx, slog.LevelInfo))
		assert.True(t, get().Enabled(ctx, slog.LevelError))
	})

	t.Run("Unknown Level Falls Back To Info", func(t *testing.T) {
		Initialize("verbose", "text")
		assert.False(t, get().Enabled(ctx, slog.LevelDebug))
		assert.True(t, get().Enabled(ctx, slog.LevelInfo))
	})
}
