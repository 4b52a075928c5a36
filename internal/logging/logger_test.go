package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelWarn, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Setenv("DEPLOY_LOG_LEVEL", "error")

	log := NewLogger(&config.RuntimeConfig{})
	assert.False(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))

	debugLog := NewLogger(&config.RuntimeConfig{Debug: true})
	assert.True(t, debugLog.Enabled(context.Background(), slog.LevelDebug))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_contract.go",
		shortPath("/home/dev/src/carmarket-deploy/internal/usecase/deploy_contract.go"))
	assert.Equal(t, "main.go", shortPath("/somewhere/else/main.go"))
}
