package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := InitializeEmpty()

	assert.Equal(t, "high", cfg.GetDefaultQuality())
	assert.True(t, cfg.GetTransitionsEnabled())
	assert.Equal(t, 500, cfg.GetTransitionDuration())
	assert.Equal(t, 100, cfg.GetUndoDepth())
	assert.Equal(t, 500, cfg.GetMarkerTolerance())
	assert.Equal(t, "Info", cfg.GetLogLevel())
	assert.Equal(t, "", cfg.GetFFMpegPath())
	assert.Equal(t, "", cfg.GetTempDir())
}

func TestSetOverridesDefault(t *testing.T) {
	cfg := InitializeEmpty()

	cfg.Set(DefaultQuality, "low")
	cfg.Set(TransitionDuration, 250)

	assert.Equal(t, "low", cfg.GetDefaultQuality())
	assert.Equal(t, 250, cfg.GetTransitionDuration())
}

func TestLogLevelFallsBackOnGarbage(t *testing.T) {
	cfg := InitializeEmpty()

	cfg.Set(LogLevel, "Verbose")
	assert.Equal(t, "Info", cfg.GetLogLevel())

	cfg.Set(LogLevel, "Debug")
	assert.Equal(t, "Debug", cfg.GetLogLevel())
}

func TestValidate(t *testing.T) {
	cfg := InitializeEmpty()
	assert.NoError(t, cfg.Validate())

	cfg.Set(TransitionDuration, 0)
	assert.Error(t, cfg.Validate())

	cfg.Set(TransitionDuration, 500)
	cfg.Set(UndoDepth, -5)
	assert.Error(t, cfg.Validate())
}
